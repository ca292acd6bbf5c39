// Command hcitest is the thin CLI entry point (§6: "loaded by an external
// CLI, not in scope for behavioural detail"). It reads a scenario's YAML
// config, builds a coordinator, loads its workers and runs the scenario's
// registered coordinator-side main. It contains no scenario logic of its
// own, in the style of the teacher's kr/kr.go command plumbing.
package main

import (
	"fmt"
	"os"

	"github.com/bthci/hcitest"
	"github.com/bthci/hcitest/coordinator"
	"github.com/op/go-logging"
	"github.com/urfave/cli"
)

func runCommand(c *cli.Context) error {
	path := c.Args().First()
	if path == "" {
		return cli.NewExitError("hcitest run: missing scenario config path", 1)
	}

	cfg, err := hcitest.LoadConfig(path)
	if err != nil {
		return cli.NewExitError(fmt.Sprintf("hcitest run: %v", err), 1)
	}

	main, ok := coordinator.LookupMain(cfg.Coordinator)
	if !ok {
		return cli.NewExitError(fmt.Sprintf("hcitest run: unregistered coordinator %q", cfg.Coordinator), 1)
	}

	log := hcitest.SetupLogging("coordinator", logging.INFO)
	coord := coordinator.New(log, nil)
	if err := coord.Load(cfg); err != nil {
		return cli.NewExitError(fmt.Sprintf("hcitest run: %v", err), 1)
	}

	rc := coord.Run(main)
	os.Exit(rc)
	return nil
}

func main() {
	app := cli.NewApp()
	app.Name = "hcitest"
	app.Usage = "run a Bluetooth HCI host-side test scenario against real controllers"
	app.Version = "0.1.0"
	app.Commands = []cli.Command{
		{
			Name:      "run",
			Usage:     "hcitest run <scenario.yaml> -- load a scenario config and run it",
			ArgsUsage: "<scenario.yaml>",
			Action:    runCommand,
		},
	}
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
