package validation

import (
	"strconv"
	"sync"

	"github.com/skyliftdata/skylift-go/model"
)

// TreeState tracks which rows of a rendered validation report are expanded.
// Tables and individual checks expand independently, so collapsing a table
// does not forget which of its checks were open. Keys are plain strings and
// carry no reference to a report: state recorded against one report stays
// inert when a newer report no longer contains those tables.
type TreeState struct {
	mu             sync.RWMutex
	expandedTables map[string]struct{}
	expandedChecks map[string]struct{}
}

func NewTreeState() *TreeState {
	return &TreeState{
		expandedTables: make(map[string]struct{}),
		expandedChecks: make(map[string]struct{}),
	}
}

// ToggleTable flips the expansion of a table row and reports the new state.
func (t *TreeState) ToggleTable(tableName string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, ok := t.expandedTables[tableName]; ok {
		delete(t.expandedTables, tableName)
		return false
	}
	t.expandedTables[tableName] = struct{}{}
	return true
}

// ToggleCheck flips the expansion of the idx-th check under a table and
// reports the new state.
func (t *TreeState) ToggleCheck(tableName string, idx int) bool {
	key := checkKey(tableName, idx)

	t.mu.Lock()
	defer t.mu.Unlock()
	if _, ok := t.expandedChecks[key]; ok {
		delete(t.expandedChecks, key)
		return false
	}
	t.expandedChecks[key] = struct{}{}
	return true
}

func (t *TreeState) TableExpanded(tableName string) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	_, ok := t.expandedTables[tableName]
	return ok
}

func (t *TreeState) CheckExpanded(tableName string, idx int) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	_, ok := t.expandedChecks[checkKey(tableName, idx)]
	return ok
}

// ExpandAll marks every table and every check of the report as expanded.
func (t *TreeState) ExpandAll(report *model.ValidationReport) {
	if report == nil {
		return
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	for _, table := range report.Tables {
		t.expandedTables[table.TableName] = struct{}{}
		for idx := range table.Checks {
			t.expandedChecks[checkKey(table.TableName, idx)] = struct{}{}
		}
	}
}

// Reset collapses everything.
func (t *TreeState) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.expandedTables = make(map[string]struct{})
	t.expandedChecks = make(map[string]struct{})
}

func checkKey(tableName string, idx int) string {
	return tableName + "-" + strconv.Itoa(idx)
}
