package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	"mindhaven/internal/api"
	"mindhaven/internal/audio"
	"mindhaven/internal/core/model"
	"mindhaven/internal/core/session"
	"mindhaven/internal/core/tracker"
	"mindhaven/internal/journal"
	"mindhaven/internal/notify"
	"mindhaven/internal/platform"
	"mindhaven/internal/storage"
	"mindhaven/internal/ui/apptheme"
	"mindhaven/internal/ui/breathing"
	"mindhaven/internal/ui/chart"
	"mindhaven/internal/ui/checkin"
	"mindhaven/internal/ui/preferences"
	"mindhaven/internal/ui/sessionview"
	"mindhaven/internal/ui/strategies"
	"mindhaven/internal/ui/toast"
	"mindhaven/internal/ui/tray"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"
)

const appName = "mindhaven"

func main() {
	guard, err := platform.AcquireSingleInstance(appName)
	if err != nil {
		log.Printf("single instance: %v", err)
		return
	}
	defer func() {
		_ = guard.Release()
	}()

	fyneApp := app.NewWithID("org.mindhaven.app")
	desktopApp, ok := fyneApp.(desktop.App)
	if !ok {
		log.Printf("system tray unsupported on this platform")
		return
	}

	settings, err := storage.LoadSettings(appName)
	if err != nil {
		log.Printf("load settings: %v", err)
		settings = preferences.DefaultSettings()
	}
	var settingsMu sync.Mutex
	saveSettings := func() {
		settingsMu.Lock()
		snapshot := settings
		settingsMu.Unlock()
		if err := storage.SaveSettings(appName, snapshot); err != nil {
			log.Printf("save settings: %v", err)
		}
	}

	fyneApp.Settings().SetTheme(apptheme.New(settings.Theme == preferences.ThemeDark, settings.HighContrast))

	service := platform.NewService()
	configDir, err := service.GetConfigDir()
	if err != nil {
		log.Printf("config dir: %v", err)
		return
	}
	dataDir := filepath.Join(configDir, appName)

	eventJournal, err := journal.New(dataDir)
	if err != nil {
		log.Printf("journal: %v", err)
		return
	}
	history, err := storage.OpenHistory(filepath.Join(dataDir, "history.db"))
	if err != nil {
		log.Printf("history db: %v", err)
		return
	}
	defer history.Close()

	client := api.NewClient(api.Options{
		BaseURL:   settings.APIBaseURL,
		CSRFToken: settings.CSRFToken,
	})

	catalog, err := notify.NewCatalog()
	if err != nil {
		log.Printf("notice catalog: %v", err)
		return
	}
	chime, err := audio.NewChime()
	if err != nil {
		log.Printf("audio unavailable: %v", err)
	}

	mainWindow := fyneApp.NewWindow("MindHaven")
	mainWindow.Resize(fyne.NewSize(560, 640))
	mainWindow.SetCloseIntercept(func() {
		mainWindow.Hide()
	})

	toasts := toast.NewManager(mainWindow)
	notifier := notify.NewNotifier(catalog, notify.Sinks{
		Toast: func(notice notify.Notice) {
			fyne.Do(func() { toasts.Show(notice) })
		},
		System: func(notice notify.Notice) {
			fyneApp.SendNotification(fyne.NewNotification(notice.Title, notice.Body))
		},
		Tone: func() {
			if chime != nil {
				chime.Play()
			}
		},
	})
	notifier.SetGentleMode(settings.GentleMode)

	notifyAPIError := func(err error) {
		var statusErr *api.StatusError
		if errors.As(err, &statusErr) {
			notifier.Notify(notify.TagForStatus(statusErr.Status))
		} else {
			notifier.Notify(notify.TagRequestFailed)
		}
	}

	timer := session.New(settings.SessionConfig(), session.Options{TickInterval: time.Second})
	defer timer.Close()

	engagement := tracker.New(settings.TrackerConfig("app"), tracker.Options{TickInterval: time.Second})
	engagement.SetStore(history)
	engagement.SetPoster(client)
	engagement.SetIdleChecker(platform.NewIdleProvider())
	if settings.LastReminderTime > 0 {
		engagement.SetLastReminder(time.UnixMilli(settings.LastReminderTime))
	}

	sessionView := sessionview.NewView(sessionview.Callbacks{
		OnStart: timer.Start,
		OnPause: timer.Pause,
		OnReset: timer.Reset,
	})
	sessionView.SetRemaining(timer.Remaining(), timer.Duration())
	sessionView.SetState(timer.State())

	checkinForm := checkin.NewForm(checkin.Callbacks{
		OnDraftChange: func(draft string) {
			settingsMu.Lock()
			settings.CheckinDraft = draft
			settingsMu.Unlock()
			saveSettings()
		},
	})

	breathingView := breathing.NewView()
	breathingView.SetGentle(settings.GentleMode)

	strategiesView := strategies.NewView(client, strategies.Callbacks{
		OnError: notifyAPIError,
		OnTried: func(strategy model.Strategy) {
			notifier.Notify(notify.TagStrategyTried)
			if err := eventJournal.Append(journal.Entry{
				Event:      journal.EventStrategyTried,
				StrategyID: strategy.ID,
			}); err != nil {
				log.Printf("journal: %v", err)
			}
		},
	})

	historyPane := container.NewVBox()
	refreshHistory := func() {
		historyPane.RemoveAll()
		records, err := history.RecentCheckIns(14)
		if err != nil {
			log.Printf("recent check-ins: %v", err)
		}
		now := time.Now()
		completed, err := history.CompletedSessions(now.AddDate(0, 0, -7), now)
		if err != nil {
			log.Printf("completed sessions: %v", err)
		}
		minutes, err := history.ActiveMinutes(now.Format("2006-01-02"))
		if err != nil {
			log.Printf("active minutes: %v", err)
		}
		historyPane.Add(widget.NewLabelWithStyle("Your Week", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}))
		historyPane.Add(widget.NewLabel(fmt.Sprintf("%d focus sessions completed in the last 7 days", completed)))
		historyPane.Add(widget.NewLabel(fmt.Sprintf("%d active minutes today", minutes)))
		historyPane.Add(widget.NewLabelWithStyle("Recent mood intensity", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}))
		historyPane.Add(chart.IntensityBars(records))
		historyPane.Refresh()
	}
	refreshHistory()

	tabs := container.NewAppTabs(
		container.NewTabItem("Check-in", checkinForm.Content()),
		container.NewTabItem("Session", sessionView.Content()),
		container.NewTabItem("Breathe", breathingView.Content()),
		container.NewTabItem("Strategies", strategiesView.Content()),
		container.NewTabItem("History", historyPane),
	)
	tabs.OnSelected = func(item *container.TabItem) {
		if item.Text != "Breathe" {
			breathingView.Stop()
		}
		if item.Text == "History" {
			refreshHistory()
		}
		if item.Text == "Strategies" {
			strategiesView.Refresh()
		}
	}
	mainWindow.SetContent(tabs)

	checkinForm.SetSubmitHandler(func(checkIn model.CheckIn) {
		go func() {
			if err := history.SaveCheckIn(checkIn, false); err != nil {
				log.Printf("save check-in: %v", err)
				notifier.Notify(notify.TagGenericError)
				return
			}
			if err := eventJournal.Append(journal.Entry{
				Event:     journal.EventCheckinSaved,
				Emotion:   string(checkIn.Emotion),
				Intensity: int(checkIn.Intensity),
			}); err != nil {
				log.Printf("journal: %v", err)
			}

			settingsMu.Lock()
			settings.LastMood = string(checkIn.Emotion)
			settings.LastMoodTime = checkIn.CreatedAt
			settings.CheckinDraft = ""
			settingsMu.Unlock()
			saveSettings()

			ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
			err := client.SubmitCheckIn(ctx, checkIn)
			cancel()
			if err != nil {
				notifyAPIError(err)
				if appendErr := eventJournal.Append(journal.Entry{
					Event: journal.EventSyncFailed,
					Error: err.Error(),
				}); appendErr != nil {
					log.Printf("journal: %v", appendErr)
				}
			} else {
				if err := history.MarkCheckInSynced(checkIn.ClientID); err != nil {
					log.Printf("mark synced: %v", err)
				}
			}

			notifier.Notify(notify.TagCheckinSaved)
			fyne.Do(checkinForm.Clear)
		}()
	})
	checkinForm.RestoreDraft(settings.CheckinDraft)

	prefsWindow := preferences.New(fyneApp, settings, func(updated preferences.Settings) {
		settingsMu.Lock()
		previous := settings
		// Editable fields only; scalar round-trip values stay current.
		settings.Theme = updated.Theme
		settings.GentleMode = updated.GentleMode
		settings.HighContrast = updated.HighContrast
		settings.SessionLength = updated.SessionLength
		settings.RemindersEnabled = updated.RemindersEnabled
		settings.ReminderGap = updated.ReminderGap
		settings.Autostart = updated.Autostart
		snapshot := settings
		settingsMu.Unlock()
		saveSettings()

		fyneApp.Settings().SetTheme(apptheme.New(snapshot.Theme == preferences.ThemeDark, snapshot.HighContrast))
		notifier.SetGentleMode(snapshot.GentleMode)
		breathingView.SetGentle(snapshot.GentleMode)
		timer.UpdateConfig(snapshot.SessionConfig())
		engagement.UpdateConfig(snapshot.TrackerConfig("app"))

		if snapshot.Autostart != previous.Autostart {
			go applyAutostart(service, snapshot.Autostart)
		}
	})

	showTab := func(index int) {
		tabs.SelectIndex(index)
		mainWindow.Show()
		mainWindow.RequestFocus()
	}

	var trayManager *tray.Manager
	trayManager = tray.New(desktopApp, tray.Callbacks{
		OnOpen: func() {
			mainWindow.Show()
			mainWindow.RequestFocus()
		},
		OnCheckIn: func() {
			showTab(0)
		},
		OnToggleSession: func() {
			if timer.State() == session.StateRunning {
				timer.Pause()
			} else {
				timer.Start()
			}
		},
		OnSnoozeFor: func(duration time.Duration) {
			settingsMu.Lock()
			gap := settings.ReminderGap
			until := time.Now().Add(duration)
			settings.LastReminderTime = until.Add(-gap).UnixMilli()
			settingsMu.Unlock()
			saveSettings()
			engagement.SetLastReminder(until.Add(-gap))
		},
		OnPreferences: func() {
			prefsWindow.Show()
		},
		OnQuit: func() {
			engagement.Stop()
			fyneApp.Quit()
		},
	})
	trayManager.SetStatus("ready")

	go syncPendingCheckIns(client, history, eventJournal)

	timerEvents := timer.Subscribe(5)
	var sessionStart time.Time
	go func() {
		defer notifyPanic(notifier)
		for event := range timerEvents {
			switch event.Type {
			case session.EventStateChange:
				state := event.State
				remaining := event.Remaining
				if state == session.StateRunning && sessionStart.IsZero() {
					sessionStart = event.At
					notifier.Notify(notify.TagSessionStarted)
					if err := eventJournal.Append(journal.Entry{Event: journal.EventSessionStarted}); err != nil {
						log.Printf("journal: %v", err)
					}
				}
				if state == session.StateIdle {
					sessionStart = time.Time{}
				}
				fyne.Do(func() {
					sessionView.SetState(state)
					sessionView.SetRemaining(remaining, timer.Duration())
					trayManager.SetSessionRunning(state == session.StateRunning)
				})
			case session.EventProgress:
				remaining := event.Remaining
				fyne.Do(func() {
					sessionView.SetRemaining(remaining, timer.Duration())
					trayManager.SetStatus("session " + session.FormatRemaining(remaining))
				})
			case session.EventCompleted:
				record := &storage.SessionRecord{
					StartedAt: sessionStart,
					EndedAt:   event.At,
					Seconds:   int(timer.Duration().Seconds()),
					Completed: true,
				}
				sessionStart = time.Time{}
				if err := history.SaveSession(record); err != nil {
					log.Printf("save session: %v", err)
				}
				if err := eventJournal.Append(journal.Entry{
					Event:   journal.EventSessionCompleted,
					Seconds: record.Seconds,
				}); err != nil {
					log.Printf("journal: %v", err)
				}
				notifier.Notify(notify.TagSessionCompleted)
				fyne.Do(func() {
					trayManager.SetStatus("session complete")
				})
			}
		}
	}()

	trackerEvents := engagement.Subscribe(5)
	go func() {
		defer notifyPanic(notifier)
		for event := range trackerEvents {
			switch event.Type {
			case tracker.EventReminderDue:
				settingsMu.Lock()
				settings.LastReminderTime = event.At.UnixMilli()
				settingsMu.Unlock()
				saveSettings()
				notifier.Notify(notify.TagCheckinReminder)
				if err := eventJournal.Append(journal.Entry{Event: journal.EventReminderShown}); err != nil {
					log.Printf("journal: %v", err)
				}
			case tracker.EventSyncFailed:
				if err := eventJournal.Append(journal.Entry{
					Event: journal.EventSyncFailed,
					Error: event.Message,
				}); err != nil {
					log.Printf("journal: %v", err)
				}
			}
		}
	}()
	engagement.Start()

	mainWindow.Show()
	fyneApp.Run()
}

// syncPendingCheckIns retries check-ins saved while the platform was
// unreachable.
func syncPendingCheckIns(client *api.Client, history *storage.History, eventJournal *journal.Journal) {
	pending, err := history.UnsyncedCheckIns()
	if err != nil {
		log.Printf("unsynced check-ins: %v", err)
		return
	}
	for _, record := range pending {
		checkIn := model.CheckIn{
			ClientID:  record.ClientID,
			Emotion:   record.Emotion,
			Intensity: record.Intensity,
			Note:      record.Note,
			Page:      "checkin",
			CreatedAt: record.CreatedAt,
		}
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		err := client.SubmitCheckIn(ctx, checkIn)
		cancel()
		if err != nil {
			return
		}
		if err := history.MarkCheckInSynced(record.ClientID); err != nil {
			log.Printf("mark synced: %v", err)
			continue
		}
		if err := eventJournal.Append(journal.Entry{
			Event:   journal.EventCheckinSynced,
			Emotion: string(record.Emotion),
		}); err != nil {
			log.Printf("journal: %v", err)
		}
	}
}

func applyAutostart(service platform.Service, enable bool) {
	if !enable {
		if err := service.DisableAutostart(appName); err != nil {
			log.Printf("disable autostart: %v", err)
		}
		return
	}
	execPath, err := os.Executable()
	if err != nil {
		log.Printf("autostart: %v", err)
		return
	}
	if err := service.EnableAutostart(appName, execPath); err != nil {
		log.Printf("enable autostart: %v", err)
	}
}

func notifyPanic(notifier *notify.Notifier) {
	if recovered := recover(); recovered != nil {
		log.Printf("panic in event loop: %v", recovered)
		notifier.Notify(notify.TagGenericError)
	}
}
