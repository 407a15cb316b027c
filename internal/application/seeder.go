package application

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/onesteptask/internal/domain/entity"
	repo "github.com/oksasatya/onesteptask/internal/domain/repository"
)

// AdminSeed describes the bootstrap administrator account.
type AdminSeed struct {
	Username string
	Password string
	Email    string
	Name     string
}

// Seeder creates the default records a fresh store needs. Every step is
// skipped when its data already exists, so it is safe to run on each start.
type Seeder struct {
	Store       repo.Store
	Credentials *Credentials
	Admin       AdminSeed
	Logger      *logrus.Logger
}

func NewSeeder(store repo.Store, creds *Credentials, admin AdminSeed, logger *logrus.Logger) *Seeder {
	return &Seeder{Store: store, Credentials: creds, Admin: admin, Logger: logger}
}

func (s *Seeder) EnsureDefaults(ctx context.Context) error {
	if err := s.ensureAdmin(ctx); err != nil {
		return err
	}
	if err := s.ensureTestimonials(ctx); err != nil {
		return err
	}
	return s.ensureHomeContent(ctx)
}

func (s *Seeder) ensureAdmin(ctx context.Context) error {
	if s.Admin.Username == "" {
		return nil
	}
	_, err := s.Store.Admins.GetByUsername(ctx, s.Admin.Username)
	if err == nil {
		return nil
	}
	if !errors.Is(err, repo.ErrNotFound) {
		return err
	}
	hash, err := s.Credentials.Hash(s.Admin.Password)
	if err != nil {
		return err
	}
	a := &entity.AdminUser{Username: s.Admin.Username, Password: hash, Email: s.Admin.Email, Name: s.Admin.Name}
	if err := s.Store.Admins.Create(ctx, a); err != nil {
		return err
	}
	s.log().WithField("username", a.Username).Info("seeded admin user")
	return nil
}

func (s *Seeder) ensureTestimonials(ctx context.Context) error {
	existing, err := s.Store.Testimonials.List(ctx, false)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}
	for _, t := range defaultTestimonials() {
		t := t
		if err := s.Store.Testimonials.Create(ctx, &t); err != nil {
			return err
		}
	}
	s.log().Info("seeded testimonials")
	return nil
}

func (s *Seeder) ensureHomeContent(ctx context.Context) error {
	_, err := s.Store.PageContents.GetBySlug(ctx, "home")
	if err == nil {
		return nil
	}
	if !errors.Is(err, repo.ErrNotFound) {
		return err
	}
	p := &entity.PageContent{PageSlug: "home", Content: defaultHomeContent()}
	if err := s.Store.PageContents.Create(ctx, p); err != nil && !errors.Is(err, repo.ErrConflict) {
		return err
	}
	s.log().Info("seeded home page content")
	return nil
}

func (s *Seeder) log() logrus.FieldLogger {
	if s.Logger == nil {
		return discardLogger
	}
	return s.Logger
}

func defaultTestimonials() []entity.Testimonial {
	return []entity.Testimonial{
		{
			Name:        "Jessica Davis",
			Position:    "Marketing Manager",
			Rating:      5,
			Content:     "OneStepTask made handling my project so simple. I submitted my request and received high-quality work in record time. Definitely using them again!",
			IsPublished: true,
		},
		{
			Name:        "Michael Johnson",
			Position:    "Business Analyst",
			Rating:      5,
			Content:     "The team at OneStepTask exceeded my expectations. They completed my research project efficiently and the quality was excellent. Highly recommended!",
			IsPublished: true,
		},
		{
			Name:        "Sarah Robinson",
			Position:    "Startup Founder",
			Rating:      4,
			Content:     "As a busy entrepreneur, I don't have time for every task. OneStepTask has been a lifesaver for me. Their work is reliable and the process couldn't be easier.",
			IsPublished: true,
		},
	}
}

// defaultHomeContent uses the shapes encoding/json decodes into (float64,
// []any) so seeded and client-written documents look the same.
func defaultHomeContent() map[string]any {
	return map[string]any{
		"hero": map[string]any{
			"title":    "One Step to Simplify Your Tasks",
			"subtitle": "Submit your tasks and let us handle them for you. Fast, reliable, and hassle-free.",
		},
		"features": []any{
			map[string]any{"icon": "check-circle", "title": "Simplified Process", "description": "Submit your task in one step and we'll take care of the rest."},
			map[string]any{"icon": "bolt", "title": "Fast Turnaround", "description": "Get your tasks completed quickly with our efficient process."},
			map[string]any{"icon": "shield-alt", "title": "Secure & Reliable", "description": "Your data is protected and your tasks are handled professionally."},
		},
		"howItWorks": []any{
			map[string]any{"step": float64(1), "title": "Submit Your Task", "description": "Fill out our simple form with your task details and requirements."},
			map[string]any{"step": float64(2), "title": "We Process It", "description": "Our team reviews your request and begins working on your task."},
			map[string]any{"step": float64(3), "title": "Receive Results", "description": "Get your completed task delivered to you on time and to specification."},
		},
		"faq": []any{
			map[string]any{
				"question": "What types of tasks can I submit?",
				"answer":   "We handle a wide range of tasks including research, data entry, content writing, design work, and more. If you're unsure if we can handle your specific task, please contact us and we'll be happy to discuss it.",
			},
			map[string]any{
				"question": "How quickly will my task be completed?",
				"answer":   "Task completion time depends on complexity and your chosen plan. Basic tasks are typically completed within 48 hours, Pro tasks within 24 hours, and Business tasks within 12 hours. For urgent requests, please contact us directly.",
			},
			map[string]any{
				"question": "What if I'm not satisfied with the results?",
				"answer":   "We offer revisions based on your plan - 1 revision for Basic, 3 for Pro, and unlimited for Business. If you're still not satisfied after revisions, we have a satisfaction guarantee and will work with you to make it right.",
			},
			map[string]any{
				"question": "Is my data secure?",
				"answer":   "Yes, we take data security seriously. All information is encrypted, and we have strict confidentiality policies. We never share your data with third parties without your consent.",
			},
			map[string]any{
				"question": "Do you offer bulk pricing for multiple tasks?",
				"answer":   "Yes, we offer discounted rates for bulk task submissions. Contact our sales team for custom quotes based on your specific needs and volume.",
			},
		},
	}
}
