package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"vamu/internal/ai"
	"vamu/internal/modules/wishlist"
)

type WishlistCmd struct {
	Event     string        `arg:"" help:"Event name, e.g. \"camping weekend\"."`
	Max       int           `help:"Maximum items." default:"10"`
	GeminiKey string        `help:"Gemini API key." env:"GEMINI_API_KEY"`
	Timeout   time.Duration `help:"Generation timeout." default:"30s"`
}

func (w *WishlistCmd) Run(ctx *Context) error {
	if w.GeminiKey == "" {
		return errors.New("GEMINI_API_KEY is required")
	}

	runCtx, cancel := context.WithTimeout(context.Background(), w.Timeout)
	defer cancel()

	gemini, err := ai.NewGeminiProvider(runCtx, w.GeminiKey)
	if err != nil {
		return err
	}
	defer gemini.Close()

	suggestion, err := wishlist.NewService(gemini, nil).Suggest(runCtx, wishlist.Request{EventName: w.Event, MaxItems: w.Max})
	if err != nil {
		return err
	}

	if ctx.JSON {
		return json.NewEncoder(ctx.Out).Encode(suggestion)
	}
	fmt.Fprintf(ctx.Out, "Wishlist for %s:\n", suggestion.EventName)
	for _, item := range suggestion.Items {
		fmt.Fprintf(ctx.Out, "  - %s\n", item)
	}
	return nil
}
