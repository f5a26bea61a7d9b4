// internal/remote/stub.go

// Package remote provides an in-process stand-in for the remote plan store.
// It backs the repository and client tests and the CLI's demo mode; it is a
// test double for the external collaborator, not a product server.
package remote

import (
	"net/http"
	"strconv"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
)

// Wire records mirror the collaborator's serializers, snake_case and all.

type itemRecord struct {
	ID           int64   `json:"id"`
	Routine      int64   `json:"routine"`
	Exercise     int64   `json:"exercise"`
	ExerciseName string  `json:"exercise_name"`
	TargetSets   int     `json:"target_sets"`
	TargetReps   int     `json:"target_reps"`
	TargetWeight float64 `json:"target_weight"`
	Order        int     `json:"order"`
}

type routineRecord struct {
	ID        int64        `json:"id"`
	Schedule  int64        `json:"schedule"`
	Name      string       `json:"name"`
	DayOfWeek string       `json:"day_of_week"`
	Items     []itemRecord `json:"items"`
}

type scheduleRecord struct {
	ID        int64           `json:"id"`
	Name      string          `json:"name"`
	StartDate string          `json:"start_date"`
	EndDate   *string         `json:"end_date"`
	IsActive  bool            `json:"is_active"`
	Routines  []routineRecord `json:"routines"`
}

type exerciseRecord struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	MuscleGroup string `json:"muscle_group"`
}

// Stub holds the fake store's state behind a single mutex; item creates
// arrive concurrently during a routine commit.
type Stub struct {
	token string

	mu        sync.Mutex
	nextID    int64
	exercises []exerciseRecord
	schedules []scheduleRecord

	// Fault injection, consumed in request order.
	rejectScheduleCreates int
	rejectRoutineCreates  int
	rejectItemCreates     int
}

// NewStub creates an empty store that accepts the given bearer token and
// answers 401 for anything else.
func NewStub(token string) *Stub {
	return &Stub{token: token, nextID: 1}
}

// SeedExercise adds a library entry and returns its id.
func (s *Stub) SeedExercise(name, muscleGroup string) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.allocID()
	s.exercises = append(s.exercises, exerciseRecord{ID: id, Name: name, MuscleGroup: muscleGroup})
	return id
}

// SeedSchedule adds a schedule with no routines and returns its id. An empty
// endDate means ongoing.
func (s *Stub) SeedSchedule(name, startDate, endDate string, isActive bool) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.allocID()
	rec := scheduleRecord{
		ID:        id,
		Name:      name,
		StartDate: startDate,
		IsActive:  isActive,
		Routines:  []routineRecord{},
	}
	if endDate != "" {
		rec.EndDate = &endDate
	}
	s.schedules = append(s.schedules, rec)
	return id
}

// RejectNextScheduleCreate makes the next n POST /schedules/ return 400.
func (s *Stub) RejectNextScheduleCreate(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rejectScheduleCreates = n
}

// RejectNextRoutineCreate makes the next n POST /routines/create/ return 400.
func (s *Stub) RejectNextRoutineCreate(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rejectRoutineCreates = n
}

// RejectNextItemCreates makes the next n POST /items/create/ return 500,
// opening the partial-commit window on purpose.
func (s *Stub) RejectNextItemCreates(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rejectItemCreates = n
}

// ItemCount reports how many items the store holds for a routine.
func (s *Stub) ItemCount(routineID int64) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, sched := range s.schedules {
		for _, r := range sched.Routines {
			if r.ID == routineID {
				return len(r.Items)
			}
		}
	}
	return 0
}

func (s *Stub) allocID() int64 {
	id := s.nextID
	s.nextID++
	return id
}

// Router builds the gin engine exposing the collaborator's endpoint set.
func (s *Stub) Router() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(s.authMiddleware())

	router.GET("/exercises/", s.listExercises)
	router.GET("/schedules/", s.listSchedules)
	router.POST("/schedules/", s.createSchedule)
	router.PATCH("/schedules/:id/", s.patchSchedule)
	router.POST("/routines/create/", s.createRoutine)
	router.POST("/items/create/", s.createItem)
	router.DELETE("/routines/:id/", s.deleteRoutine)

	return router
}

func (s *Stub) authMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		parts := strings.Split(header, " ")
		if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || parts[1] != s.token {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"detail": "invalid token"})
			return
		}
		c.Next()
	}
}

func (s *Stub) listExercises(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]exerciseRecord, len(s.exercises))
	copy(out, s.exercises)
	c.JSON(http.StatusOK, out)
}

func (s *Stub) listSchedules(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]scheduleRecord, len(s.schedules))
	copy(out, s.schedules)
	c.JSON(http.StatusOK, out)
}

func (s *Stub) createSchedule(c *gin.Context) {
	var body struct {
		Name      string  `json:"name" binding:"required"`
		StartDate string  `json:"start_date" binding:"required"`
		EndDate   *string `json:"end_date"`
		IsActive  bool    `json:"is_active"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.rejectScheduleCreates > 0 {
		s.rejectScheduleCreates--
		c.JSON(http.StatusBadRequest, gin.H{"detail": "schedule rejected"})
		return
	}
	rec := scheduleRecord{
		ID:        s.allocID(),
		Name:      body.Name,
		StartDate: body.StartDate,
		EndDate:   body.EndDate,
		IsActive:  body.IsActive,
		Routines:  []routineRecord{},
	}
	s.schedules = append(s.schedules, rec)
	c.JSON(http.StatusCreated, rec)
}

func (s *Stub) patchSchedule(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "invalid id"})
		return
	}
	var body struct {
		Name     *string `json:"name"`
		EndDate  *string `json:"end_date"`
		IsActive *bool   `json:"is_active"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.schedules {
		if s.schedules[i].ID != id {
			continue
		}
		if body.Name != nil {
			s.schedules[i].Name = *body.Name
		}
		if body.EndDate != nil {
			s.schedules[i].EndDate = body.EndDate
		}
		if body.IsActive != nil {
			s.schedules[i].IsActive = *body.IsActive
		}
		c.JSON(http.StatusOK, s.schedules[i])
		return
	}
	c.JSON(http.StatusNotFound, gin.H{"detail": "schedule not found"})
}

func (s *Stub) createRoutine(c *gin.Context) {
	var body struct {
		Schedule  int64  `json:"schedule" binding:"required"`
		Name      string `json:"name" binding:"required"`
		DayOfWeek string `json:"day_of_week" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.rejectRoutineCreates > 0 {
		s.rejectRoutineCreates--
		c.JSON(http.StatusBadRequest, gin.H{"detail": "routine rejected"})
		return
	}
	for i := range s.schedules {
		if s.schedules[i].ID != body.Schedule {
			continue
		}
		rec := routineRecord{
			ID:        s.allocID(),
			Schedule:  body.Schedule,
			Name:      body.Name,
			DayOfWeek: body.DayOfWeek,
			Items:     []itemRecord{},
		}
		s.schedules[i].Routines = append(s.schedules[i].Routines, rec)
		c.JSON(http.StatusCreated, rec)
		return
	}
	c.JSON(http.StatusNotFound, gin.H{"detail": "schedule not found"})
}

func (s *Stub) createItem(c *gin.Context) {
	var body struct {
		Routine      int64   `json:"routine" binding:"required"`
		Exercise     int64   `json:"exercise" binding:"required"`
		TargetSets   int     `json:"target_sets" binding:"required"`
		TargetReps   int     `json:"target_reps" binding:"required"`
		TargetWeight float64 `json:"target_weight"`
		Order        int     `json:"order"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.rejectItemCreates > 0 {
		s.rejectItemCreates--
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "item rejected"})
		return
	}
	var exerciseName string
	for _, ex := range s.exercises {
		if ex.ID == body.Exercise {
			exerciseName = ex.Name
			break
		}
	}
	if exerciseName == "" {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "exercise not found"})
		return
	}
	for i := range s.schedules {
		for j := range s.schedules[i].Routines {
			if s.schedules[i].Routines[j].ID != body.Routine {
				continue
			}
			rec := itemRecord{
				ID:           s.allocID(),
				Routine:      body.Routine,
				Exercise:     body.Exercise,
				ExerciseName: exerciseName,
				TargetSets:   body.TargetSets,
				TargetReps:   body.TargetReps,
				TargetWeight: body.TargetWeight,
				Order:        body.Order,
			}
			s.schedules[i].Routines[j].Items = append(s.schedules[i].Routines[j].Items, rec)
			c.JSON(http.StatusCreated, rec)
			return
		}
	}
	c.JSON(http.StatusNotFound, gin.H{"detail": "routine not found"})
}

func (s *Stub) deleteRoutine(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "invalid id"})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.schedules {
		for j := range s.schedules[i].Routines {
			if s.schedules[i].Routines[j].ID != id {
				continue
			}
			// Cascade: the routine's items go with it.
			s.schedules[i].Routines = append(
				s.schedules[i].Routines[:j],
				s.schedules[i].Routines[j+1:]...,
			)
			c.Status(http.StatusNoContent)
			return
		}
	}
	c.JSON(http.StatusNotFound, gin.H{"detail": "routine not found"})
}
