package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"quiz-course/internal/cache"
	"quiz-course/internal/config"
	"quiz-course/internal/domain"
	"quiz-course/internal/dto"
	"quiz-course/internal/logger"
	"quiz-course/internal/reconcile"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// CourseService reads and maintains courses. Writes are reserved for administrators.
type CourseService interface {
	GetCourse(ctx context.Context, id int64) (*dto.CourseResponse, error)
	ListCourses(ctx context.Context) ([]dto.CourseResponse, error)
	CreateCourse(ctx context.Context, actor domain.Actor, req *dto.CourseRequest) (*dto.CourseResponse, error)
	UpdateCourse(ctx context.Context, actor domain.Actor, id int64, req *dto.CourseRequest) (*dto.CourseResponse, error)
}

type courseService struct {
	tm       domain.TransactionManager
	courses  domain.CourseRepository
	tags     domain.TagRepository
	registry *reconcile.Registry
	cache    domain.Cache // optional
	ttl      time.Duration
	sfGroup  singleflight.Group
	now      func() time.Time
}

func NewCourseService(
	tm domain.TransactionManager,
	courses domain.CourseRepository,
	tags domain.TagRepository,
	registry *reconcile.Registry,
	cache domain.Cache,
	cfg *config.Config,
) CourseService {
	return &courseService{
		tm:       tm,
		courses:  courses,
		tags:     tags,
		registry: registry,
		cache:    cache,
		ttl:      cfg.Cache.CourseTTL,
		now:      time.Now,
	}
}

func (s *courseService) GetCourse(ctx context.Context, id int64) (*dto.CourseResponse, error) {
	key := cache.CourseKey(id)
	var cached dto.CourseResponse
	if s.readCache(ctx, key, &cached) {
		return &cached, nil
	}

	res, err, _ := s.sfGroup.Do(key, func() (interface{}, error) {
		// Shared by every coalesced caller, so one caller's cancellation must not fail the rest.
		ctx := context.WithoutCancel(ctx)
		course, err := s.courses.GetCourseByID(ctx, id)
		if err != nil {
			return nil, err
		}
		resp, err := toCourseResponse(course)
		if err != nil {
			return nil, err
		}
		s.writeCache(ctx, key, resp)
		return resp, nil
	})
	if err != nil {
		return nil, err
	}

	resp, ok := res.(*dto.CourseResponse)
	if !ok {
		return nil, fmt.Errorf("unexpected type from singleflight.Do for course: %T", res)
	}
	return resp, nil
}

func (s *courseService) ListCourses(ctx context.Context) ([]dto.CourseResponse, error) {
	key := cache.CourseListKey()
	var cached []dto.CourseResponse
	if s.readCache(ctx, key, &cached) {
		return cached, nil
	}

	res, err, _ := s.sfGroup.Do(key, func() (interface{}, error) {
		ctx := context.WithoutCancel(ctx)
		courses, err := s.courses.ListCourses(ctx)
		if err != nil {
			return nil, err
		}
		out := make([]dto.CourseResponse, 0, len(courses))
		for _, c := range courses {
			resp, err := toCourseResponse(c)
			if err != nil {
				return nil, err
			}
			out = append(out, *resp)
		}
		s.writeCache(ctx, key, out)
		return out, nil
	})
	if err != nil {
		return nil, err
	}

	out, ok := res.([]dto.CourseResponse)
	if !ok {
		return nil, fmt.Errorf("unexpected type from singleflight.Do for course list: %T", res)
	}
	return out, nil
}

func (s *courseService) CreateCourse(ctx context.Context, actor domain.Actor, req *dto.CourseRequest) (*dto.CourseResponse, error) {
	if err := domain.CheckWriteAccess("", actor); err != nil {
		return nil, err
	}

	var course *domain.Course
	err := s.tm.WithTransaction(ctx, func(ctx context.Context) error {
		now := s.now().UTC()
		c := &domain.Course{
			Title:          req.Title,
			Description:    req.Description,
			QuestionsToAsk: req.QuestionsToAsk,
			CreatedAt:      now,
			UpdatedAt:      now,
		}
		if err := s.courses.InsertCourse(ctx, c); err != nil {
			return err
		}
		if err := s.syncTags(ctx, c.ID, req.TagIDs); err != nil {
			return err
		}

		var err error
		course, err = s.courses.GetCourseByID(ctx, c.ID)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx, course.ID)
	logger.Get().Info("Course created", zap.Int64("course_id", course.ID))
	return toCourseResponse(course)
}

func (s *courseService) UpdateCourse(ctx context.Context, actor domain.Actor, id int64, req *dto.CourseRequest) (*dto.CourseResponse, error) {
	if err := domain.CheckWriteAccess("", actor); err != nil {
		return nil, err
	}

	var course *domain.Course
	err := s.tm.WithTransaction(ctx, func(ctx context.Context) error {
		c, err := s.courses.GetCourseByID(ctx, id)
		if err != nil {
			return err
		}
		c.Title = req.Title
		c.Description = req.Description
		c.QuestionsToAsk = req.QuestionsToAsk
		c.UpdatedAt = s.now().UTC()
		if err := s.courses.UpdateCourse(ctx, c); err != nil {
			return err
		}
		if err := s.syncTags(ctx, c.ID, req.TagIDs); err != nil {
			return err
		}

		course, err = s.courses.GetCourseByID(ctx, c.ID)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx, id)
	return toCourseResponse(course)
}

func (s *courseService) syncTags(ctx context.Context, courseID int64, tagIDs []int64) error {
	if err := requireTags(ctx, s.tags, tagIDs); err != nil {
		return err
	}

	persisted, err := s.courses.GetCourseTagLinks(ctx, courseID)
	if err != nil {
		return err
	}
	desired := reconcile.DesiredLinks(tagIDs, persisted, func(l *domain.CourseTag) int64 { return l.TagID })

	plan, err := reconcile.Reconcile(s.registry, reconcile.Relation[reconcile.Link, *domain.CourseTag]{
		NaturalKey: reconcile.LinkKey,
		New:        func() *domain.CourseTag { return &domain.CourseTag{CourseID: courseID} },
	}, desired, persisted)
	if err != nil {
		return err
	}

	return reconcile.Apply(ctx, plan, reconcile.WriterFuncs[*domain.CourseTag]{
		DeleteFn: func(ctx context.Context, l *domain.CourseTag) error { return s.courses.DeleteCourseTagLink(ctx, l.ID) },
		UpdateFn: s.courses.UpdateCourseTagLink,
		InsertFn: s.courses.InsertCourseTagLink,
	})
}

// readCache reports a hit. Cache failures are logged and treated as misses.
func (s *courseService) readCache(ctx context.Context, key string, dst interface{}) bool {
	if s.cache == nil {
		return false
	}
	raw, err := s.cache.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, domain.ErrCacheMiss) {
			logger.Get().Warn("Course cache read failed", zap.String("key", key), zap.Error(err))
		}
		return false
	}
	if err := json.Unmarshal([]byte(raw), dst); err != nil {
		logger.Get().Warn("Dropping undecodable course cache entry", zap.String("key", key), zap.Error(err))
		return false
	}
	return true
}

func (s *courseService) writeCache(ctx context.Context, key string, value interface{}) {
	if s.cache == nil {
		return
	}
	raw, err := json.Marshal(value)
	if err != nil {
		logger.Get().Warn("Failed to encode course for cache", zap.String("key", key), zap.Error(err))
		return
	}
	if err := s.cache.Set(ctx, key, string(raw), s.ttl); err != nil {
		logger.Get().Warn("Course cache write failed", zap.String("key", key), zap.Error(err))
	}
}

func (s *courseService) invalidate(ctx context.Context, courseID int64) {
	if s.cache == nil {
		return
	}
	for _, key := range []string{cache.CourseKey(courseID), cache.CourseListKey()} {
		if err := s.cache.Delete(ctx, key); err != nil {
			logger.Get().Warn("Course cache invalidation failed", zap.String("key", key), zap.Error(err))
		}
	}
}
