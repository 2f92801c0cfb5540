package memcache_fx

import (
	"go.uber.org/fx"

	mem "splitly/pkg/memcache"
)

var Module = fx.Provide(
	provideCodeStore)

func provideCodeStore() mem.CodeStore {
	return mem.NewCodes()
}
