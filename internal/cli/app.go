package cli

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/eczhh/FakeStore/internal/backend"
	"github.com/eczhh/FakeStore/internal/cart"
	"github.com/eczhh/FakeStore/internal/catalog"
	"github.com/eczhh/FakeStore/internal/config"
	"github.com/eczhh/FakeStore/internal/credstore"
	"github.com/eczhh/FakeStore/internal/lib/logger"
	"github.com/eczhh/FakeStore/internal/service"
	"github.com/eczhh/FakeStore/internal/storage"
)

// ключ, под которым снимок корзины лежит в локальном хранилище
const cartSnapshotKey = "cart_snapshot"

// App держит собранный граф зависимостей приложения
// собирается один раз перед выполнением команды и закрывается после неё
type App struct {
	cfg     *config.Config
	log     *slog.Logger
	storage *storage.Store
	creds   *credstore.Store
	cart    *cart.Store
	backend *backend.Client
	catalog *catalog.Client
	engine  *service.OrderSyncEngine
}

// init собирает зависимости: конфиг, логгер, хранилище, клиенты и движок
func (a *App) init(configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.log = logger.New(cfg.Logger.Level)

	store, err := storage.Open(cfg.Storage.Path)
	if err != nil {
		return err
	}
	a.storage = store
	a.creds = credstore.New(store)

	a.cart = cart.NewStore()
	if err := a.restoreCart(); err != nil {
		// битый снимок не мешает работе: начинаем с пустой корзины
		a.log.Warn("failed to restore cart snapshot", slog.String("error", err.Error()))
	}

	a.backend = backend.NewClient(cfg.Backend.BaseURL, cfg.Backend.Timeout, a.creds, a.log)
	a.catalog = catalog.NewClient(cfg.Catalog.BaseURL, cfg.Catalog.Timeout)
	a.engine = service.NewOrderSyncEngine(a.backend, a.log)

	return nil
}

// close сохраняет снимок корзины и закрывает хранилище
func (a *App) close() error {
	if a.storage == nil {
		return nil
	}
	if err := a.saveCart(); err != nil {
		a.log.Error("failed to save cart snapshot", slog.String("error", err.Error()))
	}
	return a.storage.Close()
}

// restoreCart загружает снимок корзины из локального хранилища
// корзина живёт в памяти, между запусками переживает только её снимок
func (a *App) restoreCart() error {
	raw, ok, err := a.storage.Get(cartSnapshotKey)
	if err != nil || !ok {
		return err
	}

	var state cart.State
	if err := json.Unmarshal([]byte(raw), &state); err != nil {
		return fmt.Errorf("failed to unmarshal cart snapshot: %w", err)
	}

	a.cart.Restore(state)
	return nil
}

// saveCart записывает снимок корзины в локальное хранилище
func (a *App) saveCart() error {
	raw, err := json.Marshal(a.cart.Snapshot())
	if err != nil {
		return fmt.Errorf("failed to marshal cart snapshot: %w", err)
	}
	return a.storage.Set(cartSnapshotKey, string(raw))
}
