package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/jrsteele09/go-desk-client/api"
)

var (
	documentsPage    int
	documentsPerPage int
)

var documentsCmd = &cobra.Command{
	Use:   "documents",
	Short: "Manage knowledge-base documents",
}

var documentsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List uploaded documents",
	RunE: func(cmd *cobra.Command, _ []string) error {
		list, err := apiClient.Documents.List(cmd.Context(), api.ListOptions{
			Page:    documentsPage,
			PerPage: documentsPerPage,
		})
		if err != nil {
			return err
		}

		if len(list.Items) == 0 {
			fmt.Println(infoStyle.Render("No documents."))
			return nil
		}

		fmt.Println(headerStyle.Render(fmt.Sprintf("%-36s  %-30s  %-10s  %s", "ID", "NAME", "STATUS", "UPLOADED")))
		for _, doc := range list.Items {
			status := doc.Status
			if status == "failed" {
				status = failedStyle.Render(status)
			}
			fmt.Printf("%-36s  %-30s  %-10s  %s\n", doc.ID, doc.Name, status, doc.UploadedAt.Format("2006-01-02 15:04"))
		}
		fmt.Println(infoStyle.Render(fmt.Sprintf("Page %d of %d total", list.Page.Page, list.Page.Total)))
		return nil
	},
}

var documentsUploadCmd = &cobra.Command{
	Use:   "upload <file>",
	Short: "Upload a document",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		file, err := os.Open(args[0])
		if err != nil {
			return err
		}
		defer file.Close()

		document, err := apiClient.Documents.Upload(cmd.Context(), filepath.Base(args[0]), file)
		if err != nil {
			return err
		}
		fmt.Println(successStyle.Render(fmt.Sprintf("Uploaded %s (%s)", document.Name, document.ID)))
		return nil
	},
}

var documentsDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a document",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := apiClient.Documents.Delete(cmd.Context(), args[0]); err != nil {
			return err
		}
		fmt.Println(successStyle.Render("Deleted."))
		return nil
	},
}

func init() {
	documentsListCmd.Flags().IntVar(&documentsPage, "page", 0, "page number")
	documentsListCmd.Flags().IntVar(&documentsPerPage, "per-page", 0, "items per page")
	documentsCmd.AddCommand(documentsListCmd, documentsUploadCmd, documentsDeleteCmd)
	rootCmd.AddCommand(documentsCmd)
}
