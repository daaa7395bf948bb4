package app

import (
	"time"

	"github.com/meltforce/tacticalfit/internal/models"
)

// State is the current screen and the date the daily screen shows.
type State struct {
	View     View      `json:"view"`
	Selected time.Time `json:"-"`
	Date     string    `json:"selected_date"`
}

// State returns the current view state.
func (a *App) State() State {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.stateLocked()
}

func (a *App) stateLocked() State {
	return State{View: a.view, Selected: a.selected, Date: models.DateKey(a.selected)}
}

// SelectDate opens the daily screen for d. Valid from any view.
func (a *App) SelectDate(d time.Time) State {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.selected = models.DateOf(d)
	a.view = ViewDaily
	return a.stateLocked()
}

// Back leaves the daily screen for the schedule. It does nothing elsewhere.
func (a *App) Back() State {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.view == ViewDaily {
		a.view = ViewSchedule
	}
	return a.stateLocked()
}

// ShowSchedule switches to the schedule screen from any view.
func (a *App) ShowSchedule() State {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.view = ViewSchedule
	return a.stateLocked()
}

// OpenSettings switches to the settings screen.
func (a *App) OpenSettings() State {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.view = ViewSettings
	return a.stateLocked()
}

// CloseSettings returns from settings to the daily screen. It does nothing
// when settings is not open.
func (a *App) CloseSettings() State {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.view == ViewSettings {
		a.view = ViewDaily
	}
	return a.stateLocked()
}

// ToggleSettings opens settings, or closes it back to the daily screen.
func (a *App) ToggleSettings() State {
	if a.State().View == ViewSettings {
		return a.CloseSettings()
	}
	return a.OpenSettings()
}

// PrevDay moves the daily screen one day earlier.
func (a *App) PrevDay() State {
	return a.stepDay(-1)
}

// NextDay moves the daily screen one day later.
func (a *App) NextDay() State {
	return a.stepDay(1)
}

func (a *App) stepDay(n int) State {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.view == ViewDaily {
		a.selected = models.AddDays(a.selected, n)
	}
	return a.stateLocked()
}
