package cmd

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/LumenBytes/vidlens-cli/internal/dataset"
	"github.com/LumenBytes/vidlens-cli/internal/server"
)

var (
	srvPort      string
	srvDelimiter string
)

var serveCmd = &cobra.Command{
	Use:   "serve [file]",
	Short: "Serve the analysis of a dataset as a small dashboard API",
	Long: `Serve loads and cleans the dataset once at startup, then exposes the
aggregation results over HTTP until interrupted. The record set is read-only
for the life of the process.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		conf := effectiveConfig()

		path := conf.DataFile
		if len(args) == 1 {
			path = args[0]
		}
		if path == "" {
			return fmt.Errorf("no dataset: pass a file argument or set data_file in config")
		}
		if srvPort != "" {
			conf.ServerPort = srvPort
		}

		delim, err := parseDelimiter(valueOrDefault(srvDelimiter, conf.Delimiter))
		if err != nil {
			return err
		}

		table, err := dataset.Load(path, delim)
		if err != nil {
			return err
		}
		records, clean, err := dataset.Clean(table)
		if err != nil {
			return err
		}

		logger := log.New(os.Stdout, "[vidlens] ", log.LstdFlags)
		logger.Printf("cleaned %d/%d rows (%d dropped)", clean.Kept, len(table.Rows), clean.Dropped)

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		srv := server.New(conf, table.Name, len(table.Rows), records, clean, logger)
		if err := srv.Start(ctx); err != nil &&
			!errors.Is(err, context.Canceled) && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&srvPort, "port", "", "port to listen on (overrides config)")
	serveCmd.Flags().StringVar(&srvDelimiter, "delimiter", "", "CSV delimiter: ',' | ';' | 'tab'")
}
