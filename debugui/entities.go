package debugui

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/ruzzle/ecs"
)

// Columns of the entity table.
const (
	ColumnID = iota
	ColumnComponents
	ColumnCount
)

type EntityRow struct {
	ID         ecs.EntityId
	Components []string
}

// EntityBrowser lists the entities of a storage with sorting, filtering and
// paging. Selected is the entity shown by the inspector.
type EntityBrowser struct {
	Selected ecs.EntityId
	Filter   string
	PerPage  int
	Page     int

	rows          []EntityRow
	lastCount     int
	sortColumn    int
	sortAscending bool
}

func NewEntityBrowser(perPage int) *EntityBrowser {
	if perPage < 1 {
		perPage = 1
	}
	return &EntityBrowser{PerPage: perPage, sortAscending: true, lastCount: -1}
}

// Refresh rebuilds the rows when the entity count changed since the last call.
func (eb *EntityBrowser) Refresh(storage *ecs.Storage) {
	if n := storage.EntityCount(); n != eb.lastCount {
		eb.lastCount = n
		eb.rebuild(storage)
	}
}

func (eb *EntityBrowser) rebuild(storage *ecs.Storage) {
	eb.rows = eb.rows[:0]
	for id, types := range storage.Entities() {
		names := make([]string, len(types))
		for i, t := range types {
			names[i] = t.String()
		}
		eb.rows = append(eb.rows, EntityRow{ID: id, Components: names})
	}
	eb.sortRows()
	if !storage.Alive(eb.Selected) {
		eb.Selected = 0
	}
}

// SortBy orders the rows by one of the Column constants.
func (eb *EntityBrowser) SortBy(column int, ascending bool) {
	eb.sortColumn = column
	eb.sortAscending = ascending
	eb.sortRows()
}

func (eb *EntityBrowser) sortRows() {
	slices.SortStableFunc(eb.rows, func(a, b EntityRow) int {
		var c int
		switch eb.sortColumn {
		case ColumnComponents:
			c = strings.Compare(strings.Join(a.Components, ","), strings.Join(b.Components, ","))
		case ColumnCount:
			c = cmp.Compare(len(a.Components), len(b.Components))
		}
		if c == 0 {
			c = cmp.Compare(a.ID, b.ID)
		}
		if !eb.sortAscending {
			return -c
		}
		return c
	})
}

// Rows returns the sorted rows matching Filter, case-insensitively, against
// the id or any component name.
func (eb *EntityBrowser) Rows() []EntityRow {
	if eb.Filter == "" {
		return eb.rows
	}
	filter := strings.ToLower(eb.Filter)
	var out []EntityRow
	for _, row := range eb.rows {
		if strings.Contains(fmt.Sprintf("%d", row.ID), filter) ||
			strings.Contains(strings.ToLower(strings.Join(row.Components, " ")), filter) {
			out = append(out, row)
		}
	}
	return out
}

// PageRows returns the current page of Rows and the page count.
func (eb *EntityBrowser) PageRows() ([]EntityRow, int) {
	rows := eb.Rows()
	pages := max((len(rows)+eb.PerPage-1)/eb.PerPage, 1)
	eb.Page = min(max(eb.Page, 0), pages-1)
	start := eb.Page * eb.PerPage
	end := min(start+eb.PerPage, len(rows))
	return rows[start:end], pages
}

func (eb *EntityBrowser) Render(storage *ecs.Storage) {
	imgui.SetNextWindowPosV(imgui.NewVec2(360, 340), imgui.CondOnce, imgui.NewVec2(0, 0))
	imgui.SetNextWindowSizeV(imgui.NewVec2(420, 260), imgui.CondOnce)
	if !imgui.BeginV("Entity Browser", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	eb.Refresh(storage)

	imgui.InputTextWithHint("##search", "Search...", &eb.Filter, imgui.InputTextFlagsNone, nil)
	imgui.SameLine()
	if imgui.Button("Clear Filter") {
		eb.Filter = ""
	}

	rows, pages := eb.PageRows()

	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg | imgui.TableFlagsSortable | imgui.TableFlagsScrollY
	if imgui.BeginTableV("EntityTable", 3, tableFlags, imgui.NewVec2(0, 160), 0) {
		imgui.TableSetupColumn("Entity ID")
		imgui.TableSetupColumn("Components")
		imgui.TableSetupColumn("Count")
		imgui.TableHeadersRow()

		sortSpecs := imgui.TableGetSortSpecs()
		if sortSpecs.SpecsDirty() && sortSpecs.SpecsCount() > 0 {
			spec := sortSpecs.Specs()
			eb.SortBy(int(spec.ColumnIndex()), spec.SortDirection() == imgui.SortDirectionAscending)
			sortSpecs.SetSpecsDirty(false)
		}

		for _, row := range rows {
			imgui.TableNextRow()
			imgui.TableNextColumn()
			if imgui.SelectableBoolV(fmt.Sprintf("%d", row.ID), eb.Selected == row.ID, imgui.SelectableFlagsSpanAllColumns, imgui.NewVec2(0, 0)) {
				eb.Selected = row.ID
			}
			imgui.TableNextColumn()
			imgui.Text(strings.Join(row.Components, ", "))
			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%d", len(row.Components)))
		}
		imgui.EndTable()
	}

	if pages > 1 {
		imgui.Text(fmt.Sprintf("Page %d / %d (%d entities)", eb.Page+1, pages, len(eb.Rows())))
		imgui.SameLine()
		if imgui.Button("Prev") && eb.Page > 0 {
			eb.Page--
		}
		imgui.SameLine()
		if imgui.Button("Next") && eb.Page < pages-1 {
			eb.Page++
		}
	} else {
		imgui.Text(fmt.Sprintf("Total: %d entities", len(eb.Rows())))
	}

	imgui.End()
}
