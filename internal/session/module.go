package session

import "go.uber.org/fx"

// Module provides the active order accessor.
var Module = fx.Provide(NewAccessor)
