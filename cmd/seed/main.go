// seed vacía el almacenamiento y carga los datos de demostración: dos usuarios
// (MANAGER y STORE_KEEPER, password "password123") y doce commodities.
//
// Uso: go run ./cmd/seed
// Lee la misma configuración que la API (STORE_DRIVER, DATABASE_URL, ...).
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/jhoicas/commodities-api/internal/infrastructure/store"
	"github.com/jhoicas/commodities-api/pkg/config"
	"github.com/jhoicas/commodities-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel, Service: "seed"})

	if cfg.DB.Driver == config.StoreDriverMemory {
		log.Warn().Msg("STORE_DRIVER=memory: los datos se pierden al terminar el proceso")
	}

	ctx := context.Background()
	st, err := store.Open(ctx, cfg.DB, nil)
	if err != nil {
		log.Fatal().Err(err).Msg("abrir almacenamiento")
	}
	defer st.Close()

	res, err := run(ctx, st, cfg.App.BcryptCost)
	if err != nil {
		log.Error().Err(err).Msg("seed")
		st.Close()
		os.Exit(1)
	}

	log.Info().Strs("users", res.Users).Int("products", res.Products).Msg("seed completado")
	fmt.Println("\nCredenciales de ejemplo:")
	fmt.Println("  Manager:      manager@slooz.com / password123")
	fmt.Println("  Store Keeper: keeper@slooz.com  / password123")
}
