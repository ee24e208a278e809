package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/tessro/termspot/internal/session"
	"github.com/tessro/termspot/internal/spotify/player"
	"github.com/tessro/termspot/internal/wizard"
)

func runSession(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	c, err := newSpotifyClient(ctx)
	if err != nil {
		return err
	}

	term := wizard.NewTerminal(os.Stdin, os.Stdout)
	opts := session.Options{
		SearchLimit:   cfg.Session.SearchLimit,
		PlaylistLimit: cfg.Session.PlaylistLimit,
		DefaultDevice: cfg.Session.DefaultDevice,
		ExitBypass:    cfg.Session.ExitBypass,
	}

	s := session.New(player.New(c), term, term, os.Stdout, opts, logger.WithPrefix("session"))
	return s.Run(ctx)
}
