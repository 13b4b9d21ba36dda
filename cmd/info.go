package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/c2h5oh/datasize"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/deploymenttheory/go-wim/internal/config"
	"github.com/deploymenttheory/go-wim/internal/services"
	"github.com/deploymenttheory/go-wim/internal/types"
	"github.com/deploymenttheory/go-wim/internal/wimlib"
)

var (
	// Image selection (info command only)
	infoImageIndex int

	// Degradation policy (info-specific)
	infoApproximateSize bool
)

var infoCmd = &cobra.Command{
	Use:   "info [container-path]",
	Short: "Show full metadata records for images in a container",
	Long: `Show the normalized metadata record for every image in a WIM
container, or for a single image.

Examples:
  # All images, table output
  go-wim info install.wim

  # One image as JSON
  go-wim info install.wim --image 2 -o json

  # Opt into size approximation for images without TOTALBYTES
  go-wim info install.wim --approximate-size`,

	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if err := runInfo(cmd.Context(), args[0]); err != nil {
			cobra.CheckErr(err)
		}
	},
}

func init() {
	rootCmd.AddCommand(infoCmd)

	infoCmd.Flags().IntVar(&infoImageIndex, "image", 0, "1-based image index (0 = all images)")
	infoCmd.Flags().BoolVar(&infoApproximateSize, "approximate-size", false, "approximate missing image sizes from the container size")
}

func runInfo(ctx context.Context, containerPath string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if infoApproximateSize {
		cfg.ApproximateSize = true
	}

	reader, err := wimlib.Open(ctx, containerPath, wimlib.Config{
		Binary:         cfg.WimlibPath,
		CommandTimeout: cfg.CommandTimeout,
	})
	if err != nil {
		return err
	}
	defer reader.Close()

	service := services.NewMetadataService(slog.Default(), services.Options{
		ApproximateSize: cfg.ApproximateSize,
	})

	var records []*types.ImageMetadata
	if infoImageIndex > 0 {
		record, err := service.ResolveImage(reader, infoImageIndex)
		if err != nil {
			return err
		}
		records = []*types.ImageMetadata{record}
	} else {
		if records, err = service.ResolveAllImages(reader); err != nil {
			return err
		}
	}

	return renderRecords(records)
}

func renderRecords(records []*types.ImageMetadata) error {
	switch outputFormat {
	case "json":
		out, err := json.MarshalIndent(records, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(out))
	case "yaml":
		out, err := yaml.Marshal(records)
		if err != nil {
			return err
		}
		fmt.Print(string(out))
	default:
		for _, record := range records {
			printRecordTable(record)
		}
	}
	return nil
}

func printRecordTable(record *types.ImageMetadata) {
	fmt.Printf("Image %d: %s\n", record.Index, orDash(record.Name))
	if record.Description != "" {
		fmt.Printf("  Description:        %s\n", record.Description)
	}

	size := orDash("")
	if record.SizeBytes > 0 {
		size = fmt.Sprintf("%s (%d MB)", datasize.ByteSize(record.SizeBytes).HR(), record.SizeMB)
		if record.SizeApproximated {
			size += " [approximated]"
		}
	}

	fmt.Printf("  Size:               %s\n", size)
	fmt.Printf("  Bootable:           %t\n", record.Bootable)
	fmt.Printf("  Architecture:       %s\n", orDash(record.Architecture))
	fmt.Printf("  Edition:            %s\n", orDash(record.Edition))
	fmt.Printf("  Version:            %s\n", orDash(record.Version))
	fmt.Printf("  Service Pack Build: %s\n", orDash(record.ServicePackBuild))
	fmt.Printf("  Service Pack Level: %d\n", record.ServicePackLevel)
	fmt.Printf("  Installation Type:  %s\n", orDash(record.InstallationType))
	fmt.Printf("  Product Type:       %s\n", orDash(record.ProductType))
	fmt.Printf("  Product Suite:      %s\n", orDash(record.ProductSuite))
	fmt.Printf("  System Root:        %s\n", orDash(record.SystemRoot))
	fmt.Printf("  HAL:                %s\n", orDash(record.HAL))
	fmt.Printf("  Languages:          %s\n", orDash(record.Languages))
	fmt.Printf("  Directories:        %d\n", record.DirectoryCount)
	fmt.Printf("  Files:              %d\n", record.FileCount)
	fmt.Printf("  Created:            %s\n", record.CreatedDisplay)
	fmt.Printf("  Modified:           %s\n", record.ModifiedDisplay)
	fmt.Println()
}

func orDash(value string) string {
	if value == "" {
		return "-"
	}
	return value
}
