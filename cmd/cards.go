package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/yotoup/internal/formatter"
	"github.com/desertthunder/yotoup/internal/shared"
	"github.com/desertthunder/yotoup/internal/tasks"
	"github.com/urfave/cli/v3"
)

func (r *Runner) cardLister() *tasks.CardLister {
	api := r.Config().API
	return tasks.NewCardLister(r.client(), api.ListConcurrency, api.ListRate, r.logger)
}

// CardsList lists the user's cards with full details.
func (r *Runner) CardsList(ctx context.Context, cmd *cli.Command) error {
	format, err := formatter.ParseFormat(cmd.String("format"))
	if err != nil {
		return err
	}

	token, err := r.accessToken(ctx)
	if err != nil {
		return err
	}

	r.logger.Info("fetching cards")
	cards, err := r.cardLister().List(ctx, token)
	if err != nil {
		return err
	}
	r.logger.Debug("fetched cards", "count", len(cards))

	output := cmd.String("output")
	if err := formatter.WriteCards(r.output, cards, format, output); err != nil {
		return err
	}
	if output != "" {
		r.logger.Info("cards written", "path", output, "count", len(cards))
	}
	return nil
}

// CardsShow prints one card.
func (r *Runner) CardsShow(ctx context.Context, cmd *cli.Command) error {
	cardID := cmd.StringArg("card-id")
	if cardID == "" {
		return fmt.Errorf("%w: card id", shared.ErrMissingArgument)
	}

	token, err := r.accessToken(ctx)
	if err != nil {
		return err
	}

	card, err := r.client().FetchCard(ctx, cardID, token)
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(card, cmd.Bool("pretty"))
	}

	_, err = r.output.Write(formatter.CardDetail(card))
	return err
}
