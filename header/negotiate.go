package header

import (
	"cmp"
	"context"
	"log/slog"
	"slices"

	"github.com/ghettovoice/httphdr/log"
)

// Alternative is an accepted alternative of a negotiable header, e.g. a media range of Accept.
type Alternative[T any] interface {
	// Quality returns the quality factor of the alternative.
	Quality() Quality
	// Compare returns the specificity score of the match of the candidate,
	// or false if the alternative does not match it.
	// A greater score means a more specific match.
	Compare(cand T) (score int, ok bool)
}

// NegotiateOptions are options for negotiation functions.
type NegotiateOptions struct {
	// Logger receives debug traces of negotiation decisions.
	// If nil, [log.Default] is used.
	Logger *slog.Logger
}

func (o *NegotiateOptions) log() *slog.Logger {
	if o == nil || o.Logger == nil {
		return log.Default()
	}
	return o.Logger
}

type negotiated struct {
	cand  string
	idx   int
	score int
	q     Quality
}

// Negotiate selects and ranks the candidates acceptable by the accepted alternatives.
//
// Each candidate is converted with transform, candidates it rejects are skipped.
// For every candidate the alternative with the highest specificity score wins,
// ties are resolved by the highest quality and then by the earliest position in accepted.
// Candidates without a matching alternative or resolved to quality 0 are dropped.
// The rest are returned ordered by score, then quality (both descending),
// then by the original candidate position.
func Negotiate[T any, A Alternative[T]](
	candidates []string,
	accepted []A,
	transform func(string) (T, bool),
	opts *NegotiateOptions,
) []string {
	logger := opts.log()
	ctx := context.Background()

	res := make([]negotiated, 0, len(candidates))
	for i, cand := range candidates {
		v, ok := transform(cand)
		if !ok {
			logger.LogAttrs(ctx, slog.LevelDebug, "skip malformed candidate", slog.String("candidate", cand))
			continue
		}

		best := -1
		var bestScore int
		var bestQ Quality
		for j, alt := range accepted {
			score, ok := alt.Compare(v)
			if !ok {
				continue
			}
			if q := alt.Quality(); best < 0 || score > bestScore || (score == bestScore && q > bestQ) {
				best, bestScore, bestQ = j, score, q
			}
		}

		switch {
		case best < 0:
			logger.LogAttrs(ctx, slog.LevelDebug, "candidate not accepted", slog.String("candidate", cand))
			continue
		case bestQ == 0:
			logger.LogAttrs(ctx, slog.LevelDebug, "candidate explicitly rejected",
				slog.String("candidate", cand),
				slog.Any("alternative", log.FmtValue(accepted[best], false)),
			)
			continue
		}
		res = append(res, negotiated{cand: cand, idx: i, score: bestScore, q: bestQ})
	}

	slices.SortFunc(res, func(a, b negotiated) int {
		if c := cmp.Compare(b.score, a.score); c != 0 {
			return c
		}
		if c := cmp.Compare(b.q, a.q); c != 0 {
			return c
		}
		return cmp.Compare(a.idx, b.idx)
	})

	out := make([]string, len(res))
	for i := range res {
		out[i] = res[i].cand
	}
	logger.LogAttrs(ctx, slog.LevelDebug, "negotiated",
		slog.Any("candidates", candidates),
		slog.Any("result", out),
	)
	return out
}
