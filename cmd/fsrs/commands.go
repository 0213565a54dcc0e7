package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/phrazzld/scry-fsrs/internal/domain"
	"github.com/phrazzld/scry-fsrs/internal/domain/srs"
	"github.com/phrazzld/scry-fsrs/internal/platform/logger"
	"github.com/phrazzld/scry-fsrs/internal/service/card_review"
	"github.com/spf13/cobra"
)

// stateFile is the subset of a learner state file the queue command reads.
type stateFile struct {
	Concepts map[string]struct {
		FSRSCard *domain.CardRecord `json:"fsrs_card"`
	} `json:"concepts"`
}

func newReviewCmd(a *app) *cobra.Command {
	var (
		cardJSON   string
		rating     int
		date       string
		paramsJSON string
	)

	cmd := &cobra.Command{
		Use:   "review",
		Short: "Process a review event",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			card, err := parseCard(cardJSON)
			if err != nil {
				return err
			}
			params, err := parseParams(paramsJSON)
			if err != nil {
				return err
			}

			ctx := logger.WithLogger(cmd.Context(), a.logger)
			resp, err := a.service.Review(ctx, card_review.ReviewRequest{
				Card:       card,
				Rating:     rating,
				ReviewDate: date,
				Params:     params,
			})
			if err != nil {
				return err
			}
			return a.writeJSON(resp)
		},
	}

	cmd.Flags().StringVar(&cardJSON, "card", "", "Card state as JSON")
	cmd.Flags().IntVar(&rating, "rating", 0, "Rating: 1=again 2=hard 3=good 4=easy")
	cmd.Flags().StringVar(&date, "date", "", "Review date (ISO format, default now)")
	cmd.Flags().StringVar(&paramsJSON, "params", "", "FSRS parameters as JSON")
	_ = cmd.MarkFlagRequired("card")
	_ = cmd.MarkFlagRequired("rating")

	return cmd
}

func newPreviewCmd(a *app) *cobra.Command {
	var (
		cardJSON   string
		date       string
		paramsJSON string
	)

	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Preview all rating outcomes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			card, err := parseCard(cardJSON)
			if err != nil {
				return err
			}
			params, err := parseParams(paramsJSON)
			if err != nil {
				return err
			}

			ctx := logger.WithLogger(cmd.Context(), a.logger)
			resp, err := a.service.Preview(ctx, card_review.PreviewRequest{
				Card:       card,
				ReviewDate: date,
				Params:     params,
			})
			if err != nil {
				return err
			}
			return a.writeJSON(resp)
		},
	}

	cmd.Flags().StringVar(&cardJSON, "card", "", "Card state as JSON")
	cmd.Flags().StringVar(&date, "date", "", "Review date (ISO format, default now)")
	cmd.Flags().StringVar(&paramsJSON, "params", "", "FSRS parameters as JSON")
	_ = cmd.MarkFlagRequired("card")

	return cmd
}

func newQueueCmd(a *app) *cobra.Command {
	var (
		statePath string
		date      string
	)

	cmd := &cobra.Command{
		Use:   "queue",
		Short: "Get today's review queue",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cards, err := readState(statePath)
			if err != nil {
				return err
			}

			ctx := logger.WithLogger(cmd.Context(), a.logger)
			resp, err := a.service.Queue(ctx, card_review.QueueRequest{
				Cards: cards,
				Today: date,
			})
			if err != nil {
				return err
			}
			return a.writeJSON(resp)
		},
	}

	cmd.Flags().StringVar(&statePath, "state", "", "Path to state.json")
	cmd.Flags().StringVar(&date, "date", "", "Today's date (ISO format, default today UTC)")
	_ = cmd.MarkFlagRequired("state")

	return cmd
}

func newPostponeCmd(a *app) *cobra.Command {
	var (
		cardJSON string
		days     int
	)

	cmd := &cobra.Command{
		Use:   "postpone",
		Short: "Push a card's next review back by whole days",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			card, err := parseCard(cardJSON)
			if err != nil {
				return err
			}

			ctx := logger.WithLogger(cmd.Context(), a.logger)
			resp, err := a.service.Postpone(ctx, card_review.PostponeRequest{
				Card: card,
				Days: days,
			})
			if err != nil {
				return err
			}
			return a.writeJSON(resp)
		},
	}

	cmd.Flags().StringVar(&cardJSON, "card", "", "Card state as JSON")
	cmd.Flags().IntVar(&days, "days", 0, "Number of days to postpone")
	_ = cmd.MarkFlagRequired("card")
	_ = cmd.MarkFlagRequired("days")

	return cmd
}

func parseCard(raw string) (domain.CardRecord, error) {
	var record domain.CardRecord
	if err := json.Unmarshal([]byte(raw), &record); err != nil {
		return domain.CardRecord{}, fmt.Errorf("failed to parse --card: %w", err)
	}
	return record, nil
}

// parseParams decodes an optional parameter override; empty input means none.
func parseParams(raw string) (*srs.ParamsConfig, error) {
	if raw == "" {
		return nil, nil
	}
	var params srs.ParamsConfig
	if err := json.Unmarshal([]byte(raw), &params); err != nil {
		return nil, fmt.Errorf("failed to parse --params: %w", err)
	}
	return &params, nil
}

// readState loads the cards of every concept that has one.
func readState(path string) (map[string]domain.CardSource, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read state file: %w", err)
	}

	var state stateFile
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("failed to parse state file %s: %w", path, err)
	}

	cards := make(map[string]domain.CardSource, len(state.Concepts))
	for conceptID, concept := range state.Concepts {
		if concept.FSRSCard == nil {
			continue
		}
		cards[conceptID] = *concept.FSRSCard
	}
	return cards, nil
}
