package tasks

import (
	"context"
	"io"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/yotoup/internal/models"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
)

// CardAPI is the remote surface the card listing needs.
type CardAPI interface {
	ListCards(ctx context.Context, token string) ([]models.Card, error)
	FetchCard(ctx context.Context, cardID, token string) (*models.Card, error)
}

// CardLister lists the user's cards with full details.
type CardLister struct {
	api         CardAPI
	concurrency int
	limiter     *rate.Limiter
	logger      *log.Logger
}

// NewCardLister creates a lister running at most concurrency detail requests at once,
// started at no more than perSecond per second. Non-positive values disable the respective bound.
func NewCardLister(api CardAPI, concurrency int, perSecond float64, logger *log.Logger) *CardLister {
	limit := rate.Inf
	if perSecond > 0 {
		limit = rate.Limit(perSecond)
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &CardLister{
		api:         api,
		concurrency: concurrency,
		limiter:     rate.NewLimiter(limit, 1),
		logger:      logger,
	}
}

// List fetches the summary list then the details of every card.
//
// The result has one entry per summary in the same order. A card whose detail request fails is
// returned as its summary.
func (l *CardLister) List(ctx context.Context, token string) ([]models.Card, error) {
	summaries, err := l.api.ListCards(ctx, token)
	if err != nil {
		return nil, err
	}

	detailed := make([]models.Card, len(summaries))
	g, gctx := errgroup.WithContext(ctx)
	if l.concurrency > 0 {
		g.SetLimit(l.concurrency)
	}

	for i, summary := range summaries {
		g.Go(func() error {
			detailed[i] = summary

			if summary.CardID == "" {
				return nil
			}
			if err := l.limiter.Wait(gctx); err != nil {
				return err
			}

			card, err := l.api.FetchCard(gctx, summary.CardID, token)
			if err != nil {
				if gctx.Err() != nil {
					return gctx.Err()
				}
				l.logger.Warn("failed to fetch card details", "card_id", summary.CardID, "error", err)
				return nil
			}
			detailed[i] = *card
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return detailed, nil
}
