package webapi

import (
	"flag"
	"os"

	"sema/util"

	"github.com/gonuts/commander"
)

var (
	configFile string
	listenAddr string
)

func ApiRun(cmd *commander.Command, args []string) error {
	config := DefaultConfig()
	if configFile != "" {
		location, found := util.LocateFile(configFile, []string{".", "conf"})
		if found {
			loaded, err := ReadConfigFile(location)
			if err != nil {
				return err
			}
			config = loaded
		}
	}
	if listenAddr != "" {
		config.Addr = listenAddr
	}
	server, err := NewServer(config)
	if err != nil {
		return err
	}
	return server.ListenAndServe()
}

func ApiCmd() *commander.Command {
	cmd := &commander.Command{
		Run:       ApiRun,
		UsageLine: "api [-c <config yaml>] [-addr <listen address>]",
		Short:     "serves the annotation pipeline over HTTP",
		Long: `
serves /tag, /parse, /pipeline and /models over HTTP

	$ ./sema api -c api.yaml

`,
		Flag: *flag.NewFlagSet("api", flag.ExitOnError),
	}
	cmd.Flag.StringVar(&configFile, "c", "api.yaml", "Server Configuration File (yaml)")
	cmd.Flag.StringVar(&listenAddr, "addr", "", "Override listen address")
	return cmd
}

func AllCommands() *commander.Command {
	cmd := &commander.Command{
		UsageLine: os.Args[0] + " api",
		Short:     "annotation api server",
	}
	cmd.Subcommands = []*commander.Command{ApiCmd()}
	return cmd
}
