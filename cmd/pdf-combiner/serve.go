package main

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/pdf-combiner/internal/combine"
	"github.com/pdiddy/pdf-combiner/internal/logging"
	"github.com/pdiddy/pdf-combiner/internal/webui"
)

const defaultAddr = "127.0.0.1:8080"

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the graphical front end in the browser",
	Long: `Serve starts a local web page for combining PDFs: enter a folder, review
the PDFs found there with their page counts, pick an output name, and combine.
The merge runs on this machine; nothing is uploaded.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		log := logging.WithComponent(newLogger(), "webui")
		engine := combine.New(
			combine.NewPDFCPU(viper.GetBool("relaxed")),
			combine.WithLogger(log),
		)
		return webui.New(engine, log).ListenAndServe(cmd.Context(), viper.GetString("serve.addr"))
	},
}

func init() {
	serveCmd.Flags().String("addr", defaultAddr, "address to listen on")
	_ = viper.BindPFlag("serve.addr", serveCmd.Flags().Lookup("addr"))

	rootCmd.AddCommand(serveCmd)
}
