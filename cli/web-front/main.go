package main

import (
	"encoding/json"
	"os"
	"os/signal"
	"syscall"

	"github.com/pelletier/go-toml/v2"
	"github.com/sagernet/sing-webfront/extensions/log"
	"github.com/sagernet/sing-webfront/extensions/webfront"
	"github.com/sagernet/sing/common"
	E "github.com/sagernet/sing/common/exceptions"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

type Flags struct {
	webfront.Options
	Verbose    bool
	ConfigFile string
}

func main() {
	command := newCommand(&Flags{Options: webfront.DefaultOptions()})
	err := command.Execute()
	if err != nil {
		logrus.Fatal(err)
	}
}

func newCommand(f *Flags) *cobra.Command {
	command := &cobra.Command{
		Use:   "web-front",
		Short: "serve a single html document at the site root",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			run(cmd, f)
		},
	}

	command.Flags().StringVarP(&f.Bind, "local-address", "b", f.Bind, "Store the local address, all interfaces if empty.")
	command.Flags().Uint16VarP(&f.LocalPort, "local-port", "l", f.LocalPort, "Store the local port number.")
	command.Flags().StringVarP(&f.Document, "document", "d", f.Document, "Store the path of the served document.")
	command.Flags().BoolVar(&f.Compress, "compress", f.Compress, "Enable gzip compression.")
	command.Flags().BoolVar(&f.H2C, "h2c", f.H2C, "Enable HTTP/2 over cleartext.")
	command.Flags().StringVar(&f.LogLevel, "log-level", f.LogLevel, "Store the log level.")
	command.Flags().StringVarP(&f.ConfigFile, "config", "c", "", "Use a configuration file.")
	command.Flags().BoolVarP(&f.Verbose, "verbose", "v", false, "Enable verbose mode.")

	command.AddCommand(newGenerateConfigCommand())
	return command
}

func newGenerateConfigCommand() *cobra.Command {
	var useTOML bool
	command := &cobra.Command{
		Use:   "gencfg",
		Short: "print the default configuration",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			common.Must(generateConfig(cmd, useTOML))
		},
	}
	command.Flags().BoolVar(&useTOML, "toml", false, "Print the configuration as TOML.")
	return command
}

func generateConfig(cmd *cobra.Command, useTOML bool) error {
	options := webfront.DefaultOptions()
	var content []byte
	var err error
	if useTOML {
		content, err = toml.Marshal(options)
	} else {
		content, err = json.MarshalIndent(options, "", "  ")
		content = append(content, '\n')
	}
	if err != nil {
		return err
	}
	_, err = cmd.OutOrStdout().Write(content)
	return err
}

func loadOptions(cmd *cobra.Command, f *Flags) (webfront.Options, error) {
	if f.ConfigFile == "" {
		return f.Options, nil
	}
	options := webfront.DefaultOptions()
	err := webfront.ReadOptions(f.ConfigFile, &options)
	if err != nil {
		return options, err
	}
	flags := cmd.Flags()
	if flags.Changed("local-address") {
		options.Bind = f.Bind
	}
	if flags.Changed("local-port") {
		options.LocalPort = f.LocalPort
	}
	if flags.Changed("document") {
		options.Document = f.Document
	}
	if flags.Changed("compress") {
		options.Compress = f.Compress
	}
	if flags.Changed("h2c") {
		options.H2C = f.H2C
	}
	if flags.Changed("log-level") {
		options.LogLevel = f.LogLevel
	}
	return options, nil
}

func run(cmd *cobra.Command, f *Flags) {
	options, err := loadOptions(cmd, f)
	if err != nil {
		logrus.StandardLogger().Log(logrus.FatalLevel, err, "\n\n")
		cmd.Help()
		os.Exit(1)
	}

	err = log.SetLevel(options.LogLevel)
	if err != nil {
		logrus.Fatal(err)
	}
	if f.Verbose {
		logrus.SetLevel(logrus.TraceLevel)
	}

	server := webfront.NewServer(options, log.NewLogger("web-front"))
	err = server.Start()
	if err != nil {
		logrus.Fatal(E.Cause(err, "start server"))
	}

	osSignals := make(chan os.Signal, 1)
	signal.Notify(osSignals, os.Interrupt, syscall.SIGTERM)
	<-osSignals

	err = server.Close()
	if err != nil {
		logrus.Warn(E.Cause(err, "close server"))
	}
}
