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
	"github.com/deploymenttheory/go-wim/internal/wimlib"
)

var listCmd = &cobra.Command{
	Use:   "list [container-path]",
	Short: "List images with a one-line summary each",
	Long: `List the images in a WIM container with index, name, edition,
architecture, size and boot flag.

Examples:
  # Summary table
  go-wim list install.wim

  # Machine-readable listing
  go-wim list install.wim -o json`,

	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if err := runList(cmd.Context(), args[0]); err != nil {
			cobra.CheckErr(err)
		}
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
}

// imageSummary is the reduced listing record.
type imageSummary struct {
	Index        int    `json:"index" yaml:"index"`
	Name         string `json:"name,omitempty" yaml:"name,omitempty"`
	Edition      string `json:"edition,omitempty" yaml:"edition,omitempty"`
	Architecture string `json:"architecture,omitempty" yaml:"architecture,omitempty"`
	SizeBytes    int64  `json:"sizeBytes" yaml:"sizeBytes"`
	Bootable     bool   `json:"bootable" yaml:"bootable"`
}

func runList(ctx context.Context, containerPath string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
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

	records, err := service.ResolveAllImages(reader)
	if err != nil {
		return err
	}

	summaries := make([]imageSummary, 0, len(records))
	for _, record := range records {
		summaries = append(summaries, imageSummary{
			Index:        record.Index,
			Name:         record.Name,
			Edition:      record.Edition,
			Architecture: record.Architecture,
			SizeBytes:    record.SizeBytes,
			Bootable:     record.Bootable,
		})
	}

	switch outputFormat {
	case "json":
		out, err := json.MarshalIndent(summaries, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(out))
	case "yaml":
		out, err := yaml.Marshal(summaries)
		if err != nil {
			return err
		}
		fmt.Print(string(out))
	default:
		fmt.Printf("%-5s %-30s %-25s %-8s %-10s %s\n", "INDEX", "NAME", "EDITION", "ARCH", "SIZE", "BOOT")
		for _, s := range summaries {
			size := "-"
			if s.SizeBytes > 0 {
				size = datasize.ByteSize(s.SizeBytes).HR()
			}
			boot := ""
			if s.Bootable {
				boot = "*"
			}
			fmt.Printf("%-5d %-30s %-25s %-8s %-10s %s\n", s.Index, orDash(s.Name), orDash(s.Edition), orDash(s.Architecture), size, boot)
		}
	}

	return nil
}
