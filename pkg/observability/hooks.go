package observability

import "github.com/aretw0/jza/pkg/domain"

// ComposeHooks fans every event out to each of the given hook sets in order.
func ComposeHooks(hooks ...domain.LifecycleHooks) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnTrain: func(e *domain.TrainEvent) {
			for _, h := range hooks {
				if h.OnTrain != nil {
					h.OnTrain(e)
				}
			}
		},
		OnValidate: func(e *domain.ValidateEvent) {
			for _, h := range hooks {
				if h.OnValidate != nil {
					h.OnValidate(e)
				}
			}
		},
		OnGenerate: func(e *domain.GenerateEvent) {
			for _, h := range hooks {
				if h.OnGenerate != nil {
					h.OnGenerate(e)
				}
			}
		},
		OnRetry: func(e *domain.RetryEvent) {
			for _, h := range hooks {
				if h.OnRetry != nil {
					h.OnRetry(e)
				}
			}
		},
	}
}
