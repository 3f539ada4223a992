package web

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/yuin/goldmark"
	goldmarkHTML "github.com/yuin/goldmark/renderer/html"

	"gymdesk/internal/adapters/http/middleware"
	"gymdesk/internal/application/orchestrators"
	"gymdesk/internal/application/projections"
	"gymdesk/internal/application/workflow"
	"gymdesk/internal/domain/course"
)

// timeNow is a variable for testability.
var timeNow = time.Now

// mdRenderer is a goldmark instance configured for safe HTML output.
// Raw HTML in markdown input is escaped (WithUnsafe is NOT set), preventing XSS.
var mdRenderer = goldmark.New(
	goldmark.WithRendererOptions(
		goldmarkHTML.WithHardWraps(),
	),
)

// renderMarkdown converts a course description to HTML for the view layer.
func renderMarkdown(md string) string {
	var buf bytes.Buffer
	if err := mdRenderer.Convert([]byte(md), &buf); err != nil {
		return ""
	}
	return buf.String()
}

// internalError logs the real error and returns a generic message to the client.
func internalError(w http.ResponseWriter, err error) {
	slog.Error("internal_error", "error", err.Error())
	http.Error(w, "internal server error", http.StatusInternalServerError)
}

// writeJSON encodes v as the response body.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// requireSession resolves the request's session or writes a 401.
func requireSession(w http.ResponseWriter, r *http.Request) (middleware.Session, bool) {
	sess, ok := middleware.GetSessionFromContext(r.Context())
	if !ok {
		http.Error(w, "not authenticated", http.StatusUnauthorized)
		return middleware.Session{}, false
	}
	return sess, true
}

// parseWhen accepts RFC3339 timestamps or bare YYYY-MM-DD dates in local time.
func parseWhen(value string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	return time.ParseInLocation("2006-01-02", value, time.Local)
}

func registerRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/api/login", handleLogin)
	mux.HandleFunc("/api/register", handleRegister)
	mux.HandleFunc("/api/logout", handleLogout)
	mux.HandleFunc("/api/session", handleSession)
	mux.HandleFunc("/api/dashboard", handleDashboard)
	mux.HandleFunc("/api/activity", handleActivity)
	mux.HandleFunc("/api/calendar", handleCalendar)
	mux.HandleFunc("/api/calendar/month", handleCalendarMonth)
	mux.HandleFunc("/api/calendar/select", handleCalendarSelect)
	mux.HandleFunc("/api/classes", handleClasses)
	mux.HandleFunc("/api/bookings", handleBookings)
	mux.HandleFunc("/api/bookings/select", handleBookingSelect)
	mux.HandleFunc("/api/bookings/confirm", handleBookingConfirm)
	mux.HandleFunc("/api/bookings/dismiss", handleBookingDismiss)
	mux.HandleFunc("/api/courses", handleCourses)
}

// authDeps builds the orchestrator dependencies shared by login and register.
func authDeps(token string) orchestrators.AuthDeps {
	return orchestrators.AuthDeps{
		SessionStore:  stores.Session,
		GenerateID:    generateID,
		GenerateToken: func() string { return token },
		Activity:      feed,
	}
}

// handleLogin handles POST /api/login.
func handleLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	var input struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}

	// The same token backs the cookie and the persisted session marker.
	token := uuid.New().String()
	u, err := orchestrators.ExecuteLogin(r.Context(), orchestrators.LoginInput{
		Email:    input.Email,
		Password: input.Password,
	}, authDeps(token))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	sessions.Create(token, u)
	middleware.SetSessionCookie(w, token)
	writeJSON(w, http.StatusOK, u)
}

// handleRegister handles POST /api/register.
func handleRegister(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	var input struct {
		FirstName string `json:"firstName"`
		LastName  string `json:"lastName"`
		Email     string `json:"email"`
		Password  string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}

	token := uuid.New().String()
	u, err := orchestrators.ExecuteRegister(r.Context(), orchestrators.RegisterInput{
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Email:     input.Email,
		Password:  input.Password,
	}, authDeps(token))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	sessions.Create(token, u)
	middleware.SetSessionCookie(w, token)
	writeJSON(w, http.StatusCreated, u)
}

// handleLogout handles POST /api/logout.
func handleLogout(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if sess, ok := middleware.GetSessionFromContext(r.Context()); ok {
		sessions.Delete(sess.Token)
		dropView(sess.Token)
	}
	if err := orchestrators.ExecuteLogout(r.Context(), orchestrators.AuthDeps{SessionStore: stores.Session}); err != nil {
		internalError(w, err)
		return
	}
	middleware.ClearSessionCookie(w)
	w.WriteHeader(http.StatusNoContent)
}

// handleSession handles GET /api/session: the current user, if any.
func handleSession(w http.ResponseWriter, r *http.Request) {
	sess, ok := requireSession(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, sess.User)
}

// handleDashboard handles GET /api/dashboard.
func handleDashboard(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireSession(w, r); !ok {
		return
	}
	result, err := projections.QueryGetDashboard(r.Context(), timeNow(), projections.GetDashboardDeps{
		CourseStore:  stores.Catalog,
		BookingStore: stores.Ledger,
	})
	if err != nil {
		internalError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// handleActivity handles GET /api/activity: the recent feed, newest first.
func handleActivity(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireSession(w, r); !ok {
		return
	}
	writeJSON(w, http.StatusOK, feed.Recent())
}

// calendarResponse pairs the grid with the session's current selection.
type calendarResponse struct {
	Grid         projections.MonthGridResult `json:"grid"`
	SelectedDate *time.Time                  `json:"selectedDate"`
}

func writeCalendar(w http.ResponseWriter, r *http.Request, view *viewState) {
	viewed, selected := view.calendar()
	grid, err := projections.QueryGetMonthGrid(r.Context(), viewed, selected, projections.GetMonthGridDeps{
		CourseStore: stores.Catalog,
	})
	if err != nil {
		internalError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, calendarResponse{Grid: grid, SelectedDate: selected})
}

// handleCalendar handles GET /api/calendar. An optional month=YYYY-MM query
// renders that month without moving the session's viewed month.
func handleCalendar(w http.ResponseWriter, r *http.Request) {
	sess, ok := requireSession(w, r)
	if !ok {
		return
	}
	view := getView(sess.Token)
	if month := r.URL.Query().Get("month"); month != "" {
		viewed, err := time.ParseInLocation("2006-01", month, time.Local)
		if err != nil {
			http.Error(w, "invalid month", http.StatusBadRequest)
			return
		}
		_, selected := view.calendar()
		grid, err := projections.QueryGetMonthGrid(r.Context(), viewed, selected, projections.GetMonthGridDeps{
			CourseStore: stores.Catalog,
		})
		if err != nil {
			internalError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, calendarResponse{Grid: grid, SelectedDate: selected})
		return
	}
	writeCalendar(w, r, view)
}

// handleCalendarMonth handles POST /api/calendar/month: advance or retreat
// the viewed month. The selected date is preserved even when it falls
// outside the new month.
func handleCalendarMonth(w http.ResponseWriter, r *http.Request) {
	sess, ok := requireSession(w, r)
	if !ok {
		return
	}
	if r.Method != "POST" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	var input struct {
		Direction int `json:"direction"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	if input.Direction != 1 && input.Direction != -1 {
		http.Error(w, "direction must be 1 or -1", http.StatusBadRequest)
		return
	}
	view := getView(sess.Token)
	view.shiftMonth(input.Direction)
	writeCalendar(w, r, view)
}

// handleCalendarSelect handles POST /api/calendar/select.
func handleCalendarSelect(w http.ResponseWriter, r *http.Request) {
	sess, ok := requireSession(w, r)
	if !ok {
		return
	}
	if r.Method != "POST" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	var input struct {
		Date string `json:"date"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	date, err := parseWhen(input.Date)
	if err != nil {
		http.Error(w, "invalid date", http.StatusBadRequest)
		return
	}
	view := getView(sess.Token)
	view.selectDate(date)
	writeClasses(w, r, view)
}

// classesResponse distinguishes "no date selected" from "selected day with
// zero classes".
type classesResponse struct {
	DateSelected bool                      `json:"dateSelected"`
	Classes      []projections.ClassResult `json:"classes"`
}

func writeClasses(w http.ResponseWriter, r *http.Request, view *viewState) {
	_, selected := view.calendar()
	if selected == nil {
		writeJSON(w, http.StatusOK, classesResponse{DateSelected: false, Classes: []projections.ClassResult{}})
		return
	}
	classes, err := projections.QueryGetClassesForDate(r.Context(), *selected, projections.GetClassesForDateDeps{
		CourseStore: stores.Catalog,
	})
	if err != nil {
		internalError(w, err)
		return
	}
	if classes == nil {
		classes = []projections.ClassResult{}
	}
	writeJSON(w, http.StatusOK, classesResponse{DateSelected: true, Classes: classes})
}

// handleClasses handles GET /api/classes: bookable sessions for the current
// selection, or for an explicit date= query without touching the selection.
func handleClasses(w http.ResponseWriter, r *http.Request) {
	sess, ok := requireSession(w, r)
	if !ok {
		return
	}
	if raw := r.URL.Query().Get("date"); raw != "" {
		date, err := parseWhen(raw)
		if err != nil {
			http.Error(w, "invalid date", http.StatusBadRequest)
			return
		}
		classes, err := projections.QueryGetClassesForDate(r.Context(), date, projections.GetClassesForDateDeps{
			CourseStore: stores.Catalog,
		})
		if err != nil {
			internalError(w, err)
			return
		}
		if classes == nil {
			classes = []projections.ClassResult{}
		}
		writeJSON(w, http.StatusOK, classesResponse{DateSelected: true, Classes: classes})
		return
	}
	writeClasses(w, r, getView(sess.Token))
}

// handleBookings handles GET (my bookings) and DELETE (cancel) for /api/bookings.
func handleBookings(w http.ResponseWriter, r *http.Request) {
	sess, ok := requireSession(w, r)
	if !ok {
		return
	}

	switch r.Method {
	case "GET":
		bookings, err := projections.QueryGetMyBookings(r.Context(), sess.User.ID, projections.GetMyBookingsDeps{
			BookingStore: stores.Ledger,
		})
		if err != nil {
			internalError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, bookings)

	case "DELETE":
		id, err := strconv.ParseInt(r.URL.Query().Get("id"), 10, 64)
		if err != nil {
			http.Error(w, "id is required", http.StatusBadRequest)
			return
		}
		// Cancellation is idempotent: an unknown id is a silent no-op.
		err = orchestrators.ExecuteCancelBooking(r.Context(), orchestrators.CancelBookingInput{ID: id}, orchestrators.CancelBookingDeps{
			BookingStore: stores.Ledger,
			Activity:     feed,
		})
		if err != nil {
			internalError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)

	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

// handleBookingSelect handles POST /api/bookings/select: capture a class
// session for confirmation.
func handleBookingSelect(w http.ResponseWriter, r *http.Request) {
	sess, ok := requireSession(w, r)
	if !ok {
		return
	}
	if r.Method != "POST" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	var input struct {
		CourseID int64  `json:"courseId"`
		StartsAt string `json:"startsAt"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	startsAt, err := parseWhen(input.StartsAt)
	if err != nil {
		http.Error(w, "invalid startsAt", http.StatusBadRequest)
		return
	}

	view := getView(sess.Token)
	pending, err := view.flow.Select(r.Context(), input.CourseID, startsAt)
	if errors.Is(err, workflow.ErrClassNotFound) {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	if err != nil {
		internalError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, pending)
}

// handleBookingConfirm handles POST /api/bookings/confirm.
func handleBookingConfirm(w http.ResponseWriter, r *http.Request) {
	sess, ok := requireSession(w, r)
	if !ok {
		return
	}
	if r.Method != "POST" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	view := getView(sess.Token)
	b, err := view.flow.Confirm(r.Context(), sess.User)
	switch {
	case errors.Is(err, workflow.ErrAuthRequired):
		http.Error(w, err.Error(), http.StatusUnauthorized)
		return
	case errors.Is(err, workflow.ErrNothingPending):
		http.Error(w, err.Error(), http.StatusConflict)
		return
	case err != nil:
		internalError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, b)
}

// handleBookingDismiss handles POST /api/bookings/dismiss.
func handleBookingDismiss(w http.ResponseWriter, r *http.Request) {
	sess, ok := requireSession(w, r)
	if !ok {
		return
	}
	if r.Method != "POST" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	getView(sess.Token).flow.Dismiss()
	w.WriteHeader(http.StatusNoContent)
}

// courseResponse augments a course with its description rendered as HTML.
type courseResponse struct {
	course.Course
	DescriptionHTML string `json:"descriptionHtml"`
}

// handleCourses handles GET/POST/DELETE for /api/courses.
func handleCourses(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireSession(w, r); !ok {
		return
	}

	switch r.Method {
	case "GET":
		courses, err := stores.Catalog.List(r.Context())
		if err != nil {
			internalError(w, err)
			return
		}
		out := make([]courseResponse, 0, len(courses))
		for _, c := range courses {
			out = append(out, courseResponse{Course: c, DescriptionHTML: renderMarkdown(c.Description)})
		}
		writeJSON(w, http.StatusOK, out)

	case "POST":
		var input struct {
			ID              int64    `json:"id"`
			Title           string   `json:"title"`
			Trainer         string   `json:"trainer"`
			Description     string   `json:"description"`
			ImageURL        string   `json:"imageUrl"`
			DurationMinutes int      `json:"durationMinutes"`
			Schedules       []string `json:"schedules"`
		}
		if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
			http.Error(w, "invalid JSON", http.StatusBadRequest)
			return
		}
		schedules := make([]time.Time, 0, len(input.Schedules))
		for _, s := range input.Schedules {
			at, err := parseWhen(s)
			if err != nil {
				http.Error(w, "invalid schedule timestamp", http.StatusBadRequest)
				return
			}
			schedules = append(schedules, at)
		}

		saved, err := orchestrators.ExecuteSaveCourse(r.Context(), orchestrators.SaveCourseInput{
			ID:              input.ID,
			Title:           input.Title,
			Trainer:         input.Trainer,
			Description:     input.Description,
			ImageURL:        input.ImageURL,
			DurationMinutes: input.DurationMinutes,
			Schedules:       schedules,
		}, orchestrators.SaveCourseDeps{
			CourseStore: stores.Catalog,
			GenerateID:  generateID,
			Activity:    feed,
		})
		if err != nil {
			// Validation failures leave the catalog untouched.
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		writeJSON(w, http.StatusCreated, courseResponse{Course: saved, DescriptionHTML: renderMarkdown(saved.Description)})

	case "DELETE":
		id, err := strconv.ParseInt(r.URL.Query().Get("id"), 10, 64)
		if err != nil {
			http.Error(w, "id is required", http.StatusBadRequest)
			return
		}
		err = orchestrators.ExecuteDeleteCourse(r.Context(), orchestrators.DeleteCourseInput{ID: id}, orchestrators.DeleteCourseDeps{
			CourseStore:  stores.Catalog,
			BookingStore: stores.Ledger,
			Activity:     feed,
		})
		if err != nil {
			internalError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)

	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}
