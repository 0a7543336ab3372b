package calendar

import (
	"context"
	"time"

	"go.uber.org/zap"

	"forexalert/internal/models"
)

// Source is the calendar adapter: one fetch yields today's high-impact
// events for the tracked currencies.
type Source struct {
	Client *Client
	Parser *Parser
	Logger *zap.Logger
	Now    func() time.Time
}

// Fetch retrieves and parses the current calendar view. A transport or HTTP
// error is returned to the caller; an empty result with a healthy fetch means
// the markup matched nothing (degraded parse) and is logged, not failed.
func (s *Source) Fetch(ctx context.Context) ([]models.Event, error) {
	doc, err := s.Client.FetchDocument(ctx)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	if s.Now != nil {
		now = s.Now()
	}
	events := s.Parser.Parse(doc, now)
	if len(events) == 0 && s.Logger != nil {
		s.Logger.Info("calendar parse matched no rows; markup may have changed")
	}
	return events, nil
}
