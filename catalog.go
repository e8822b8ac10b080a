package main

import (
	"encoding/json"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/beherw/FFXIV-Market-sub004/models"
	"github.com/beherw/FFXIV-Market-sub004/pkg/match"

	"github.com/fsnotify/fsnotify"
)

// catalogState holds the per-session catalog snapshot and its derived state
// (n-gram index, whitelist). The snapshot is immutable; a reload swaps in a
// whole new IndexCache so in-flight searches keep a consistent view.
type catalogState struct {
	mu    sync.RWMutex
	cache *match.IndexCache
}

var catalog catalogState

// current returns the live snapshot cache. May be an empty catalog when the
// items table has not been seeded yet; search then returns no results, which
// is the correct signal, not an error.
func (c *catalogState) current() *match.IndexCache {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.cache == nil {
		return match.NewIndexCache(nil, matchOptions().NgramSize)
	}
	return c.cache
}

func (c *catalogState) swap(entries []match.CatalogEntry) {
	cache := match.NewIndexCache(entries, matchOptions().NgramSize)
	c.mu.Lock()
	c.cache = cache
	c.mu.Unlock()
	log.Printf("catalog snapshot swapped: %d entries", len(entries))
}

// initCatalog loads all items once from the database into the session
// snapshot. The catalog is effectively static within a session; the fsnotify
// watcher is the only thing that swaps it afterwards.
func initCatalog() {
	entries, err := loadCatalogFromDB()
	if err != nil {
		log.Printf("catalog load failed, starting empty: %v", err)
	}
	catalog.swap(entries)
}

func loadCatalogFromDB() ([]match.CatalogEntry, error) {
	var items []models.Item
	if err := db.Select("id", "name").Order("id asc").Find(&items).Error; err != nil {
		return nil, err
	}
	entries := make([]match.CatalogEntry, 0, len(items))
	for _, it := range items {
		if it.Name == "" {
			continue
		}
		entries = append(entries, match.CatalogEntry{ID: it.ID, Name: it.Name})
	}
	return entries, nil
}

// catalogDump mirrors the legacy JSON item dump the database was migrated
// from: [{"id":1,"name":"精金投斧"},...].
type catalogDump struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

func loadCatalogFromJSON(path string) ([]match.CatalogEntry, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, err
	}
	var dump []catalogDump
	if err := json.Unmarshal(data, &dump); err != nil {
		return nil, err
	}
	entries := make([]match.CatalogEntry, 0, len(dump))
	for _, d := range dump {
		if d.Name == "" {
			continue
		}
		entries = append(entries, match.CatalogEntry{ID: d.ID, Name: d.Name})
	}
	return entries, nil
}

// watchCatalogFile swaps in a fresh snapshot whenever the JSON dump is
// rewritten. Writes are debounced because editors and exporters fire several
// events per save.
func watchCatalogFile(path string) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		log.Printf("catalog watcher init failed: %v", err)
		return
	}
	defer w.Close()
	if err := w.Add(filepath.Dir(path)); err != nil {
		log.Printf("catalog watcher add failed: %v", err)
		return
	}
	log.Printf("watching catalog dump %s (debounced)", path)

	target := filepath.Base(path)
	var pending time.Time
	ticker := time.NewTicker(250 * time.Millisecond)
	defer ticker.Stop()
	for {
		select {
		case ev, ok := <-w.Events:
			if !ok {
				return
			}
			if filepath.Base(ev.Name) != target {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create) != 0 {
				pending = time.Now()
			}
		case <-ticker.C:
			if pending.IsZero() || time.Since(pending) < 300*time.Millisecond {
				continue
			}
			pending = time.Time{}
			entries, err := loadCatalogFromJSON(path)
			if err != nil {
				log.Printf("catalog reload failed: %v", err)
				continue
			}
			catalog.swap(entries)
		case err, ok := <-w.Errors:
			if !ok {
				return
			}
			log.Printf("catalog watch error: %v", err)
		}
	}
}
