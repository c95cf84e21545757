package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/wricardo/pushfight/game/engine"
	"github.com/wricardo/pushfight/game/service"
)

var (
	ErrLayoutNotFound = errors.New("layout not found")
	ErrInvalidLayout  = errors.New("invalid layout")
)

// ReferenceName is the name under which the built-in layout is always available.
const ReferenceName = "reference"

// Manager handles layout loading and caching
type Manager struct {
	layoutDir     string
	defaultLayout *engine.Layout
	layouts       map[string]*engine.Layout
	mu            sync.RWMutex
}

// NewManager creates a layout manager reading JSON files from layoutDir.
// An empty or missing directory leaves only the built-in reference layout.
func NewManager(layoutDir string) (*Manager, error) {
	if layoutDir != "" {
		info, err := os.Stat(layoutDir)
		if err == nil && !info.IsDir() {
			return nil, fmt.Errorf("layout path is not a directory: %s", layoutDir)
		}
		if err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to stat layout directory: %w", err)
		}
	}

	m := &Manager{
		layoutDir: layoutDir,
		layouts:   make(map[string]*engine.Layout),
	}
	m.defaultLayout = m.loadDefaultLayout()
	return m, nil
}

// LoadLayout loads a layout by name. File layouts take precedence over the
// built-in reference layout.
func (m *Manager) LoadLayout(name string) (*engine.Layout, error) {
	name = strings.TrimSuffix(name, ".json")

	m.mu.RLock()
	if layout, exists := m.layouts[name]; exists {
		m.mu.RUnlock()
		return layout, nil
	}
	m.mu.RUnlock()

	m.mu.Lock()
	defer m.mu.Unlock()

	// Double-check after acquiring write lock
	if layout, exists := m.layouts[name]; exists {
		return layout, nil
	}

	layout, err := m.readLayout(name)
	if errors.Is(err, ErrLayoutNotFound) && name == ReferenceName {
		layout, err = engine.ReferenceLayout(), nil
	}
	if err != nil {
		return nil, err
	}

	m.layouts[name] = layout
	return layout, nil
}

func (m *Manager) readLayout(name string) (*engine.Layout, error) {
	if m.layoutDir == "" {
		return nil, ErrLayoutNotFound
	}

	data, err := os.ReadFile(filepath.Join(m.layoutDir, name+".json"))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrLayoutNotFound
		}
		return nil, fmt.Errorf("failed to read layout file: %w", err)
	}

	var layout engine.Layout
	if err := json.Unmarshal(data, &layout); err != nil {
		return nil, fmt.Errorf("failed to parse layout: %w", err)
	}
	if err := engine.ValidateLayout(&layout); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidLayout, err)
	}
	return &layout, nil
}

// ListLayouts returns information about every valid layout, the built-in
// reference layout included.
func (m *Manager) ListLayouts() ([]*service.LayoutInfo, error) {
	ids := map[string]string{ReferenceName: ""}

	if m.layoutDir != "" {
		entries, err := os.ReadDir(m.layoutDir)
		if err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read layout directory: %w", err)
		}
		for _, entry := range entries {
			if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
				continue
			}
			ids[strings.TrimSuffix(entry.Name(), ".json")] = entry.Name()
		}
	}

	var layouts []*service.LayoutInfo
	for id, filename := range ids {
		layout, err := m.LoadLayout(id)
		if err != nil {
			// Skip invalid layouts
			continue
		}
		layouts = append(layouts, &service.LayoutInfo{
			Filename:    filename,
			LayoutID:    id,
			Name:        layout.Name,
			Description: layout.Description,
			Width:       layout.Width(),
			Height:      layout.Height(),
		})
	}

	sort.Slice(layouts, func(i, j int) bool { return layouts[i].LayoutID < layouts[j].LayoutID })
	return layouts, nil
}

// GetDefault returns the default layout
func (m *Manager) GetDefault() *engine.Layout {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.defaultLayout
}

// SetDefault sets the default layout by name
func (m *Manager) SetDefault(name string) error {
	layout, err := m.LoadLayout(name)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.defaultLayout = layout
	return nil
}

// RefreshCache drops every cached layout so the next load reads from disk.
func (m *Manager) RefreshCache() {
	m.mu.Lock()
	m.layouts = make(map[string]*engine.Layout)
	m.mu.Unlock()

	layout := m.loadDefaultLayout()

	m.mu.Lock()
	m.defaultLayout = layout
	m.mu.Unlock()
}

// loadDefaultLayout prefers a reference.json override, then the built-in layout.
func (m *Manager) loadDefaultLayout() *engine.Layout {
	layout, err := m.LoadLayout(ReferenceName)
	if err != nil {
		return engine.ReferenceLayout()
	}
	return layout
}

// SaveLayout validates and writes a layout to the layout directory.
func (m *Manager) SaveLayout(name string, layout *engine.Layout) error {
	if err := engine.ValidateLayout(layout); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidLayout, err)
	}
	if m.layoutDir == "" {
		return fmt.Errorf("no layout directory configured")
	}
	if err := os.MkdirAll(m.layoutDir, 0755); err != nil {
		return fmt.Errorf("failed to create layout directory: %w", err)
	}

	name = strings.TrimSuffix(name, ".json")
	data, err := json.MarshalIndent(layout, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal layout: %w", err)
	}
	if err := os.WriteFile(filepath.Join(m.layoutDir, name+".json"), data, 0644); err != nil {
		return fmt.Errorf("failed to write layout file: %w", err)
	}

	m.mu.Lock()
	m.layouts[name] = layout
	m.mu.Unlock()
	return nil
}
