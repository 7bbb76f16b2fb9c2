package main

import (
	"context"

	"github.com/desertthunder/yotoup/internal/formatter"
	"github.com/desertthunder/yotoup/internal/repositories"
	"github.com/urfave/cli/v3"
)

// History prints recorded uploads, newest first.
func (r *Runner) History(ctx context.Context, cmd *cli.Command) error {
	db, err := r.database()
	if err != nil {
		return err
	}

	records, err := repositories.NewUploadRepository(db).List(map[string]any{
		"card_id": cmd.String("card"),
		"status":  cmd.String("status"),
		"limit":   int(cmd.Int("limit")),
	})
	if err != nil {
		return err
	}

	_, err = r.output.Write(formatter.UploadHistory(records))
	return err
}
