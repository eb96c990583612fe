package publish

import (
	"context"
	"log"
	"time"

	"github.com/andrewwu13/employment-bot/internal/events"
	"github.com/andrewwu13/employment-bot/internal/job"
	"github.com/andrewwu13/employment-bot/internal/store"
)

// Poster drains pending records to the channel. Each cycle claims a batch,
// sends record by record, and settles every claimed record to posted or back
// to pending before returning.
type Poster struct {
	Store      store.Jobs
	Sender     Sender
	BatchLimit int
	SendDelay  time.Duration
	Hub        *events.Hub
}

type PostResult struct {
	Posted int `json:"posted"`
	Failed int `json:"failed"`
}

// Post runs one posting cycle. A claim that loses the race to another worker
// ends the cycle cleanly; the records will still be there next tick.
func (p *Poster) Post(ctx context.Context) (PostResult, error) {
	limit := p.BatchLimit
	if limit <= 0 {
		limit = 5
	}

	pending, err := p.Store.ListPending(ctx, limit)
	if err != nil {
		return PostResult{}, err
	}
	if len(pending) == 0 {
		return PostResult{}, nil
	}

	ids := make([]string, len(pending))
	for i, rec := range pending {
		ids[i] = rec.ID
	}
	if err := p.Store.ClaimBatch(ctx, ids); err != nil {
		log.Printf("[publish] claim lost: %v", err)
		return PostResult{}, nil
	}

	var res PostResult
	for i, rec := range pending {
		if err := p.postOne(ctx, rec, i, len(pending)); err != nil {
			log.Printf("[publish] %q at %q: %v", rec.Title, rec.Company, err)
			res.Failed++
		} else {
			res.Posted++
		}

		if i < len(pending)-1 && p.SendDelay > 0 {
			select {
			case <-ctx.Done():
				p.release(ctx, pending[i+1:])
				return res, ctx.Err()
			case <-time.After(p.SendDelay):
			}
		}
	}

	log.Printf("[publish] cycle done: %d posted, %d returned to pending", res.Posted, res.Failed)
	return res, nil
}

// settleContext derives a short-lived context that survives cancellation of
// the run, keeping its values for request-id logging.
func settleContext(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
}

// release returns still-claimed records to pending. It runs on a detached
// context: the caller's context is already cancelled here, and a claimed
// record that never settles would be invisible to every later cycle.
func (p *Poster) release(ctx context.Context, claimed []job.Record) {
	settle, cancel := settleContext(ctx)
	defer cancel()
	for _, rec := range claimed {
		if err := p.Store.MarkFailed(settle, rec.ID); err != nil {
			log.Printf("[publish] release %s: %v", rec.ID, err)
		}
	}
}

func (p *Poster) postOne(ctx context.Context, rec job.Record, index, total int) error {
	embed := BuildEmbed(rec, index, total)

	// Status writes settle on a detached context. Once the send has been
	// attempted the record must leave posting either way, even when the
	// run is cancelled while the request is in flight.
	settle, cancel := settleContext(ctx)
	defer cancel()

	if err := p.Sender.Send(ctx, Message{Embeds: []Embed{embed}}); err != nil {
		if mfErr := p.Store.MarkFailed(settle, rec.ID); mfErr != nil {
			log.Printf("[publish] mark failed %s: %v", rec.ID, mfErr)
		}
		return err
	}

	if err := p.Store.MarkPosted(settle, rec.ID); err != nil {
		return err
	}
	if p.Hub != nil {
		p.Hub.Publish(events.JobPosted(rec.ID, rec.Title, rec.Company))
	}
	return nil
}
