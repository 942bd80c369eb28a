// Image commands attach, remove, list, and export binary attachments.
package main

import (
	"fmt"
	"mime"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/brennanjay-74/idea-vault/internal/bundle"
)

var (
	imageAttachType string
	imageExportDir  string
	imageExportAll  bool
)

var imageCmd = &cobra.Command{
	Use:   "image",
	Short: "Manage images attached to ideas",
}

var imageAttachCmd = &cobra.Command{
	Use:   "attach <idea-id> <file>",
	Short: "Attach an image file to an idea",
	Args:  cobra.ExactArgs(2),
	RunE:  runImageAttach,
}

var imageRmCmd = &cobra.Command{
	Use:   "rm <image-id>",
	Short: "Remove a single image",
	Args:  cobra.ExactArgs(1),
	RunE:  runImageRm,
}

var imageListCmd = &cobra.Command{
	Use:   "list <idea-id>",
	Short: "List the images attached to an idea",
	Args:  cobra.ExactArgs(1),
	RunE:  runImageList,
}

var imageExportCmd = &cobra.Command{
	Use:   "export [idea-id]",
	Short: "Write images out as loose files",
	Long: `Export writes each image to its own file, named
{ideaId}-{sanitizedOriginalFilename}. With an idea ID only that idea's
images are written; with --all, every image in the vault.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runImageExport,
}

func init() {
	imageAttachCmd.Flags().StringVar(&imageAttachType, "type", "", "MIME type (default: detected from extension)")
	imageExportCmd.Flags().StringVar(&imageExportDir, "dir", ".", "directory to write image files into")
	imageExportCmd.Flags().BoolVar(&imageExportAll, "all", false, "export every image in the vault")
	imageCmd.AddCommand(imageAttachCmd)
	imageCmd.AddCommand(imageRmCmd)
	imageCmd.AddCommand(imageListCmd)
	imageCmd.AddCommand(imageExportCmd)
}

func runImageAttach(cmd *cobra.Command, args []string) error {
	ideaID, path := args[0], args[1]

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read image file: %w", err)
	}

	mimeType := imageAttachType
	if mimeType == "" {
		mimeType = mime.TypeByExtension(filepath.Ext(path))
	}
	if mimeType == "" {
		mimeType = "application/octet-stream"
	}

	backend, svc, err := openService()
	if err != nil {
		return err
	}
	defer backend.Detach()

	idea, err := lookupIdea(svc, ideaID)
	if err != nil {
		return err
	}

	img, err := svc.AttachImage(idea.IdeaID, filepath.Base(path), mimeType, data)
	if err != nil {
		return fmt.Errorf("attach image: %w", err)
	}

	if flagJSON {
		return printJSON(img)
	}
	fmt.Printf("Attached image %s (%s, %d bytes)\n", img.ImageID, img.MIMEType, len(img.Data))
	return nil
}

func runImageRm(cmd *cobra.Command, args []string) error {
	backend, svc, err := openService()
	if err != nil {
		return err
	}
	defer backend.Detach()

	if err := svc.RemoveImage(args[0]); err != nil {
		return fmt.Errorf("remove image: %w", err)
	}
	fmt.Printf("Removed image %s\n", args[0])
	return nil
}

func runImageList(cmd *cobra.Command, args []string) error {
	backend, svc, err := openService()
	if err != nil {
		return err
	}
	defer backend.Detach()

	idea, err := lookupIdea(svc, args[0])
	if err != nil {
		return err
	}

	images, err := svc.Images(idea.IdeaID)
	if err != nil {
		return fmt.Errorf("list images: %w", err)
	}

	if flagJSON {
		return printJSON(images)
	}
	if len(images) == 0 {
		fmt.Println("No images attached")
		return nil
	}
	// Full image IDs: 'image rm' takes them verbatim.
	for _, img := range images {
		fmt.Printf("%s  %-24s  %-12s  %d bytes\n", img.ImageID, img.Filename, img.MIMEType, len(img.Data))
	}
	return nil
}

func runImageExport(cmd *cobra.Command, args []string) error {
	ideaID := ""
	if len(args) == 1 {
		ideaID = args[0]
	}
	if ideaID == "" && !imageExportAll {
		return fmt.Errorf("provide an idea ID or --all")
	}

	backend, _, err := openService()
	if err != nil {
		return err
	}
	defer backend.Detach()

	paths, err := bundle.ExportLooseImages(backend, ideaID, imageExportDir)
	if err != nil {
		return fmt.Errorf("export images: %w", err)
	}

	for _, p := range paths {
		fmt.Println(p)
	}
	fmt.Printf("Exported %d image(s)\n", len(paths))
	return nil
}
