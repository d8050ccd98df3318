package main

import (
	"fmt"

	"github.com/grailbio/base/cmdutil"
	"v.io/x/lib/cmdline"
)

func newCmdView() *cmdline.Command {
	cmd := &cmdline.Command{
		Name:     "view",
		Short:    "Print the intervals of a mask track as TSV",
		ArgsName: "dbpath maskname",
	}
	countsFlag := cmd.Flags.Bool("counts", false, "Print one row per contig with its interval count instead of the intervals themselves")
	cmd.Runner = cmdutil.RunnerFunc(func(env *cmdline.Env, argv []string) error {
		if len(argv) != 2 {
			return fmt.Errorf("view takes dbpath and maskname arguments, but got %v", argv)
		}
		return view(env.Stdout, argv[0], argv[1], *countsFlag)
	})
	return cmd
}

func newCmdCheck() *cmdline.Command {
	cmd := &cmdline.Command{
		Name: "check",
		Short: `Validate a mask track and print a JSON summary.
The summary includes seahash checksums of the raw track files for quick comparison`,
		ArgsName: "dbpath maskname",
	}
	cmd.Runner = cmdutil.RunnerFunc(func(env *cmdline.Env, argv []string) error {
		if len(argv) != 2 {
			return fmt.Errorf("check takes dbpath and maskname arguments, but got %v", argv)
		}
		return check(env.Stdout, argv[0], argv[1])
	})
	return cmd
}

func main() {
	cmdline.HideGlobalFlagsExcept()
	cmdline.Main(
		&cmdline.Command{
			Name:     "bio-masktool",
			Short:    "Tools for inspecting DAZZ_DB mask tracks",
			LookPath: false,
			Children: []*cmdline.Command{
				newCmdView(),
				newCmdCheck(),
			},
		})
}
