package app

import "github.com/bft-labs/vaultsweep/internal/domain"

// Observer is notified as a sweep progresses. Implementations must not block;
// the sweep is strictly sequential and waits on every call.
type Observer interface {
	OnCount(resource domain.Resource, total int)
	OnPage(resource domain.Resource, page domain.Page)
	OnOutcome(resource domain.Resource, verb domain.Verb, outcome domain.Outcome)
	OnComplete(report Report)
}

type noopObserver struct{}

func (noopObserver) OnCount(domain.Resource, int)                           {}
func (noopObserver) OnPage(domain.Resource, domain.Page)                    {}
func (noopObserver) OnOutcome(domain.Resource, domain.Verb, domain.Outcome) {}
func (noopObserver) OnComplete(Report)                                      {}
