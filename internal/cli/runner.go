package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"

	"fxconvert/internal/domain"
	"fxconvert/internal/rate"

	"github.com/sirupsen/logrus"
)

const defaultListBase = "USD"

type Service interface {
	Convert(ctx context.Context, source string, target string, amount float64) (domain.Conversion, error)
	FetchAllRates(ctx context.Context, base string) (map[string]float64, error)
}

type PairValidator interface {
	ValidatePair(source, target string) error
	ValidateCode(code string) error
}

// Runner drives the one-shot, list and interactive command modes. Results go
// to out, user-facing error messages to errOut.
type Runner struct {
	service   Service
	validator PairValidator
	out       io.Writer
	errOut    io.Writer
}

func NewRunner(service Service, validator PairValidator, out io.Writer, errOut io.Writer) *Runner {
	return &Runner{service: service, validator: validator, out: out, errOut: errOut}
}

// RenderError turns an error into the message shown to a terminal user.
func RenderError(err error) string {
	var apiErr *domain.APIResponseError
	switch {
	case errors.Is(err, domain.ErrNetwork):
		return "Failed to reach the currency conversion API. Please check your network connection."
	case errors.As(err, &apiErr):
		return "API Error: " + apiErr.Message
	case errors.Is(err, domain.ErrCurrencyNotFound):
		return "One or both specified currencies are not supported."
	case isInputError(err):
		return "Invalid input: " + err.Error()
	default:
		return fmt.Sprintf("An unexpected error occurred: %v", err)
	}
}

func isInputError(err error) bool {
	for _, target := range []error{
		rate.ErrSourceRequired, rate.ErrTargetRequired, rate.ErrInvalidCode,
		rate.ErrSourceUnsupported, rate.ErrTargetUnsupported, rate.ErrInvalidAmount,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// Convert performs one conversion and prints the rate and converted amount.
func (r *Runner) Convert(ctx context.Context, source string, target string, amount float64) error {
	err := r.convert(ctx, source, target, amount)
	if err != nil {
		_, _ = fmt.Fprintln(r.errOut, RenderError(err))
	}
	return err
}

func (r *Runner) convert(ctx context.Context, source string, target string, amount float64) error {
	source, target = rate.NormalizeCode(source), rate.NormalizeCode(target)
	if err := r.validator.ValidatePair(source, target); err != nil {
		return err
	}

	conv, err := r.service.Convert(ctx, source, target, amount)
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintf(r.out, "Exchange Rate: %s\n", formatRate(conv.Rate))
	_, _ = fmt.Fprintf(r.out, "Converted Amount: %s\n", conv.Converted.String())
	return nil
}

// ListRates prints every rate quoted against base, ordered by currency code.
func (r *Runner) ListRates(ctx context.Context, base string) error {
	base = rate.NormalizeCode(base)
	if base == "" {
		base = defaultListBase
	}

	err := r.validator.ValidateCode(base)
	var rates map[string]float64
	if err == nil {
		rates, err = r.service.FetchAllRates(ctx, base)
	}
	if err != nil {
		_, _ = fmt.Fprintln(r.errOut, RenderError(err))
		return err
	}

	codes := make([]string, 0, len(rates))
	for code := range rates {
		codes = append(codes, code)
	}
	slices.Sort(codes)

	_, _ = fmt.Fprintf(r.out, "Exchange rates for %s:\n", base)
	for _, code := range codes {
		_, _ = fmt.Fprintf(r.out, "  %s: %s\n", code, formatRate(rates[code]))
	}
	return nil
}

// Interactive prompts for conversions until "quit", EOF or ctx cancellation.
// Failed conversions are reported and the loop continues.
func (r *Runner) Interactive(ctx context.Context, in io.Reader) error {
	scanner := bufio.NewScanner(in)
	prompt := func(label string) (string, bool) {
		_, _ = fmt.Fprint(r.out, label)
		if ctx.Err() != nil || !scanner.Scan() {
			return "", false
		}
		text := strings.TrimSpace(scanner.Text())
		if strings.EqualFold(text, "quit") || strings.EqualFold(text, "exit") {
			return "", false
		}
		return text, true
	}

	_, _ = fmt.Fprintln(r.out, "Interactive mode. Type 'quit' to exit.")
	for {
		source, ok := prompt("Source currency: ")
		if !ok {
			break
		}
		target, ok := prompt("Target currency: ")
		if !ok {
			break
		}
		rawAmount, ok := prompt("Amount: ")
		if !ok {
			break
		}

		amount, err := strconv.ParseFloat(rawAmount, 64)
		if err != nil {
			_, _ = fmt.Fprintln(r.errOut, RenderError(rate.ErrInvalidAmount))
			continue
		}
		if convErr := r.Convert(ctx, source, target, amount); convErr != nil {
			logrus.WithError(convErr).Debug("interactive conversion failed")
		}
	}
	_, _ = fmt.Fprintln(r.out)

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read interactive input failed: %w", err)
	}
	return ctx.Err()
}

func formatRate(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
