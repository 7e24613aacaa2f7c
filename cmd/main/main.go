package main

import (
	"fmt"
	"strings"

	"github.com/KWCapstoneGitFolio/realGitFolio/internal/app"
	"github.com/alecthomas/kingpin/v2"
	"github.com/maxbolgarin/contem"
	"github.com/maxbolgarin/erro"
	"github.com/maxbolgarin/errm"
	"github.com/maxbolgarin/logze/v2"
)

var (
	Version, Branch, Commit, BuildDate string
)

var (
	configPath = kingpin.Flag("config", "path to config file").Short('c').String()
	repoFlag   = kingpin.Flag("repo", "generate one overview for owner/name and exit").Short('r').String()
	userFlag   = kingpin.Flag("user", "username for the one-shot overview").Short('u').String()
)

func main() {
	kingpin.Parse()
	var err error
	ctx := contem.New(contem.WithLogger(logze.DefaultPtr()), contem.Exit(&err))
	defer ctx.Shutdown()
	err = run(ctx)
	if err != nil {
		logze.DefaultPtr().Error("cannot run", "error", err)
	}
}

func run(ctx contem.Context) error {
	cfg, err := app.LoadConfig(*configPath)
	if err != nil {
		return erro.Wrap(err, "load config")
	}
	logze.Init(logze.C().WithConsole().WithLevel(logze.LevelDebug))

	gitfolio, err := app.New(ctx, cfg)
	if err != nil {
		return erro.Wrap(err, "new app")
	}

	if *repoFlag != "" {
		owner, name, ok := strings.Cut(*repoFlag, "/")
		if !ok {
			return errm.New("repo must be in owner/name form")
		}
		doc, err := gitfolio.RunOverview(ctx, owner, name, *userFlag)
		if err != nil {
			return erro.Wrap(err, "run overview")
		}
		fmt.Println(doc)
		return nil
	}

	if err := gitfolio.StartServer(ctx); err != nil {
		return erro.Wrap(err, "start server")
	}

	return nil
}
