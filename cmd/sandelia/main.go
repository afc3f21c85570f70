package main

import (
	"github.com/bwmarrin/snowflake"
	"github.com/medexy/sandelia/internal/clock"
	"github.com/medexy/sandelia/internal/config"
	"github.com/medexy/sandelia/internal/discount"
	"github.com/medexy/sandelia/internal/exporter"
	"github.com/medexy/sandelia/internal/inventory"
	"github.com/medexy/sandelia/internal/logger"
	"github.com/medexy/sandelia/internal/masterdata"
	"github.com/medexy/sandelia/internal/migration"
	"github.com/medexy/sandelia/internal/order"
	"github.com/medexy/sandelia/internal/processing"
	"github.com/medexy/sandelia/internal/recordlog"
	"github.com/medexy/sandelia/internal/server"
	"github.com/medexy/sandelia/internal/store"
	"github.com/medexy/sandelia/pkg/db"
	"go.uber.org/fx"
)

func main() {
	app := fx.New(
		// Core infrastructure
		config.Module,
		logger.Module,
		fx.Provide(registerSnowflake),
		db.Module,
		clock.Module,
		migration.Module,

		// Record log and the services on top of it
		recordlog.Module,
		store.Module,
		processing.Module,
		exporter.Module,
		masterdata.Module,
		discount.Module,
		inventory.Module,
		order.Module,

		server.Module,
	)
	app.Run()
}

func registerSnowflake() (*snowflake.Node, error) {
	return snowflake.NewNode(1)
}
