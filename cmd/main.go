package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/exec"
	"os/signal"
	"strings"
	"syscall"

	"github.com/brettbedarf/memtree"
	"github.com/brettbedarf/memtree/adapters"
	"github.com/brettbedarf/memtree/config"
	"github.com/brettbedarf/memtree/internal/display"
	"github.com/brettbedarf/memtree/internal/util"
	"github.com/brettbedarf/memtree/requests"
	"github.com/brettbedarf/memtree/server"
)

// pathList collects repeated -read flags
type pathList []string

func (p *pathList) String() string { return strings.Join(*p, ",") }

func (p *pathList) Set(v string) error {
	*p = append(*p, v)
	return nil
}

// demoRequests is the layout loaded by -demo. file1.txt is written twice.
func demoRequests() []*memtree.NodeRequest {
	return []*memtree.NodeRequest{
		{ID: "demo-home", Parent: "/", Name: "home", Type: memtree.DirNodeType},
		{ID: "demo-user1", Parent: "/home", Name: "user1", Type: memtree.DirNodeType},
		{ID: "demo-file1", Parent: "/home/user1", Name: "file1.txt", Type: memtree.FileNodeType,
			Content: "Hello, World!\n",
			// appended after the inline content
			Sources: []memtree.ContentSource{{Adapter: adapters.NewInlineAdapter("This is the second line.\n")}}},
		{ID: "demo-etc", Parent: "/", Name: "etc", Type: memtree.DirNodeType},
		{ID: "demo-config", Parent: "/etc", Name: "config", Type: memtree.FileNodeType,
			Content: "Configuration data here."},
	}
}

func main() {
	var (
		verbose    int
		nodesDef   string
		configPath string
		umount     bool
		demo       bool
		printTree  bool
		reads      pathList
	)
	flag.StringVar(&nodesDef, "nodes", "", "Path to nodes seed file (.json, .yaml, .yml)")
	flag.StringVar(&nodesDef, "n", "", "--nodes (shorthand)")
	flag.StringVar(&configPath, "config", "", "Path to config file (.json, .yaml, .yml)")
	flag.StringVar(&configPath, "c", "", "--config (shorthand)")
	flag.BoolVar(&umount, "umount", false,
		"Unmount the fs first if needed before mounting again. Useful for debuggers that don't exit properly.")
	flag.BoolVar(&umount, "u", false, "--umount (shorthand)")
	flag.IntVar(&verbose, "verbose", config.InfoVerbose, "Log verbosity level between 1 (error) and 5 (trace). Default is 3 (info).")
	flag.IntVar(&verbose, "v", config.InfoVerbose, "--verbose (shorthand)")
	flag.BoolVar(&demo, "demo", false, "Load the demo layout before any seed file")
	flag.BoolVar(&printTree, "tree", true, "Print the tree structure when not mounting")
	flag.Var(&reads, "read", "Print the content of a file path; may be repeated")
	flag.Var(&reads, "r", "--read (shorthand)")
	flag.Parse()

	cfg := config.NewConfig(nil)
	if configPath != "" {
		fileCfg, err := config.NewConfigFromFile(configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to load config %s: %v\n", configPath, err)
			os.Exit(1)
		}
		cfg = fileCfg
	}
	flag.Visit(func(f *flag.Flag) {
		if f.Name == "verbose" || f.Name == "v" {
			cfg.Merge(&config.ConfigOverride{LogLvl: &verbose})
		}
	})

	util.InitializeLogger(cfg.LogLvl, os.Stderr)
	logger := util.GetLogger("main")

	mnt := flag.Arg(0)
	logger.Info().Str("nodes", nodesDef).Str("config", configPath).Str("mnt", mnt).Msg("memtree initializing")

	mt := server.New(cfg)
	ctx := context.Background()

	if demo {
		if _, err := mt.Apply(ctx, demoRequests()); err != nil {
			logger.Fatal().Err(err).Msg("Failed to load demo layout")
		}
	}

	if nodesDef != "" {
		reg := adapters.NewRegistry()
		adapters.RegisterBuiltins(reg)
		reqs, err := requests.LoadFile(nodesDef, reg)
		if err != nil {
			logger.Fatal().Err(err).Str("nodes", nodesDef).Msg("Failed to read nodes file")
		}
		logger.Debug().Str("nodes", nodesDef).Int("entries", len(reqs)).Msg("Nodes file loaded successfully")

		res, err := mt.Apply(ctx, reqs)
		if err != nil {
			logger.Error().Err(err).Msg("Some nodes could not be added")
		}
		logger.Info().Int("directories", res.Dirs).Int("files", res.Files).Msg("Added new nodes to tree")
	} else if !demo {
		logger.Warn().Msg("No nodes file provided")
	}

	if mnt == "" {
		if err := printOutput(mt, cfg, reads, printTree); err != nil {
			logger.Error().Err(err).Msg("Failed to print")
			os.Exit(1)
		}
		return
	}

	if umount {
		cmd := exec.Command("fusermount", "-u", mnt)
		// we ignore error here if not already mounted
		cmd.Run() // nolint:errcheck
	}

	if err := mt.Serve(mnt); err != nil {
		logger.Fatal().Err(err).Msg("Failed to mount filesystem")
	}

	signalChan := make(chan os.Signal, 1)
	signal.Notify(signalChan, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	logger.Info().Str("mountpoint", mnt).Msg("Filesystem mounted successfully")

	sig := <-signalChan
	logger.Info().Str("signal", sig.String()).Msg("Received signal, unmounting filesystem")

	if err := mt.Unmount(); err != nil {
		logger.Error().Err(err).Msg("Failed to unmount filesystem")
	} else {
		logger.Info().Msg("Filesystem unmounted successfully")
	}
}

// printOutput writes the requested file contents and then the tree to stdout.
// A failed read is reported and the remaining output is still printed.
func printOutput(mt *server.MemTree, cfg *config.Config, reads []string, printTree bool) error {
	logger := util.GetLogger("main")

	var failed bool
	for _, p := range reads {
		data, err := mt.Read(p)
		if err != nil {
			logger.Error().Err(err).Str("path", p).Msg("Failed to read file")
			failed = true
			continue
		}
		if _, err := os.Stdout.Write(data); err != nil {
			return err
		}
	}
	if printTree {
		if err := display.Render(os.Stdout, mt.Enumerate(), cfg.Indent); err != nil {
			return err
		}
	}
	if failed {
		return fmt.Errorf("one or more reads failed")
	}
	return nil
}
