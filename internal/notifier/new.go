package notifier

import (
	pkgLog "github-commits-notifier/pkg/log"
)

type usecase struct {
	resolver  Resolver
	messenger Messenger
	l         pkgLog.Logger
}

// New creates the push notification UseCase.
func New(resolver Resolver, messenger Messenger, l pkgLog.Logger) UseCase {
	return &usecase{
		resolver:  resolver,
		messenger: messenger,
		l:         l,
	}
}
