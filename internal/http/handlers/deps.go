package handlers

import (
	"aviatickets/internal/config"
	"aviatickets/internal/repositories"
	"aviatickets/internal/services"
)

// Shared handler dependencies, set once by the router at startup.
var (
	appEnv  config.Env
	store   repositories.BookingStore
	gateway services.ProviderAPI
)

func Init(env config.Env, s repositories.BookingStore, p services.ProviderAPI) {
	appEnv = env
	store = s
	gateway = p
}
