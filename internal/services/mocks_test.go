package services

import (
	"strings"
	"sync"
	"time"

	"resolvenow_backend/internal/config"
	"resolvenow_backend/internal/email"
	"resolvenow_backend/internal/models"
	"resolvenow_backend/internal/repositories"

	"github.com/google/uuid"
)

// In-memory repository fakes. They mirror the postgres-backed
// behavior closely enough for service-level tests.

type fakeUserRepo struct {
	mu    sync.Mutex
	users []*models.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{}
}

func (r *fakeUserRepo) add(user *models.User) *models.User {
	r.mu.Lock()
	defer r.mu.Unlock()
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	user.CreatedAt = time.Now()
	r.users = append(r.users, user)
	return user
}

func (r *fakeUserRepo) Create(user *models.User) error {
	user.Email = strings.ToLower(strings.TrimSpace(user.Email))
	r.mu.Lock()
	for _, u := range r.users {
		if u.Email == user.Email {
			r.mu.Unlock()
			return repositories.ErrUserAlreadyExists
		}
	}
	r.mu.Unlock()
	r.add(user)
	return nil
}

func (r *fakeUserRepo) FindByID(id string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, repositories.ErrUserNotFound
}

func (r *fakeUserRepo) FindByEmail(email string) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, repositories.ErrUserNotFound
}

func (r *fakeUserRepo) Update(user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, u := range r.users {
		if u.ID == user.ID {
			r.users[i] = user
			return nil
		}
	}
	return repositories.ErrUserNotFound
}

func (r *fakeUserRepo) FindAllExcept(userID string) ([]models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.User
	for _, u := range r.users {
		if u.ID != userID {
			out = append(out, *u)
		}
	}
	return out, nil
}

func (r *fakeUserRepo) FindByRole(role models.UserRole) ([]models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.User
	for _, u := range r.users {
		if u.Role == role {
			out = append(out, *u)
		}
	}
	return out, nil
}

func (r *fakeUserRepo) FindIDsByRole(role models.UserRole) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var ids []string
	for _, u := range r.users {
		if u.Role == role {
			ids = append(ids, u.ID)
		}
	}
	return ids, nil
}

func (r *fakeUserRepo) FindIDsExcept(userID string) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var ids []string
	for _, u := range r.users {
		if u.ID != userID {
			ids = append(ids, u.ID)
		}
	}
	return ids, nil
}

func (r *fakeUserRepo) CountByRole(role models.UserRole) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var count int64
	for _, u := range r.users {
		if u.Role == role {
			count++
		}
	}
	return count, nil
}

type fakeComplaintRepo struct {
	mu         sync.Mutex
	complaints []*models.Complaint
}

func newFakeComplaintRepo() *fakeComplaintRepo {
	return &fakeComplaintRepo{}
}

func (r *fakeComplaintRepo) Create(complaint *models.Complaint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if complaint.ID == "" {
		complaint.ID = uuid.NewString()
	}
	complaint.CreatedAt = time.Now()
	r.complaints = append(r.complaints, complaint)
	return nil
}

func (r *fakeComplaintRepo) FindByID(id string) (*models.Complaint, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.complaints {
		if c.ID == id {
			return c, nil
		}
	}
	return nil, repositories.ErrComplaintNotFound
}

func (r *fakeComplaintRepo) FindByUser(userID string) ([]models.Complaint, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Complaint
	for _, c := range r.complaints {
		if c.UserID == userID {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (r *fakeComplaintRepo) List(criteria repositories.ComplaintCriteria) ([]models.Complaint, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var matched []models.Complaint
	for _, c := range r.complaints {
		if criteria.Status != "" && string(c.Status) != criteria.Status {
			continue
		}
		if criteria.AssignedTo != "" && (c.AssignedToID == nil || *c.AssignedToID != criteria.AssignedTo) {
			continue
		}
		if criteria.Category != "" && string(c.Category) != criteria.Category {
			continue
		}
		matched = append(matched, *c)
	}

	total := int64(len(matched))

	limit := criteria.Limit
	if limit <= 0 {
		limit = 20
	}
	page := criteria.Page
	if page <= 0 {
		page = 1
	}
	start := (page - 1) * limit
	if start >= len(matched) {
		return nil, total, nil
	}
	end := start + limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[start:end], total, nil
}

func (r *fakeComplaintRepo) Save(complaint *models.Complaint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, c := range r.complaints {
		if c.ID == complaint.ID {
			r.complaints[i] = complaint
			return nil
		}
	}
	return repositories.ErrComplaintNotFound
}

func (r *fakeComplaintRepo) AddSuggestion(suggestion *models.Suggestion) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if suggestion.ID == "" {
		suggestion.ID = uuid.NewString()
	}
	suggestion.CreatedAt = time.Now()
	for _, c := range r.complaints {
		if c.ID == suggestion.ComplaintID {
			c.Suggestions = append(c.Suggestions, *suggestion)
			return nil
		}
	}
	return repositories.ErrComplaintNotFound
}

func (r *fakeComplaintRepo) ShortCodeExists(code string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.complaints {
		if c.ComplaintID == code {
			return true, nil
		}
	}
	return false, nil
}

type fakeMessageRepo struct {
	mu       sync.Mutex
	messages []*models.Message
}

func newFakeMessageRepo() *fakeMessageRepo {
	return &fakeMessageRepo{}
}

func (r *fakeMessageRepo) Create(message *models.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if message.ID == "" {
		message.ID = uuid.NewString()
	}
	message.CreatedAt = time.Now()
	r.messages = append(r.messages, message)
	return nil
}

func (r *fakeMessageRepo) FindByComplaint(complaintID string) ([]models.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Message
	for _, m := range r.messages {
		if m.ComplaintID == complaintID {
			out = append(out, *m)
		}
	}
	return out, nil
}

type fakeNotificationRepo struct {
	mu            sync.Mutex
	notifications []*models.Notification
}

func newFakeNotificationRepo() *fakeNotificationRepo {
	return &fakeNotificationRepo{}
}

func (r *fakeNotificationRepo) Create(notification *models.Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if notification.ID == "" {
		notification.ID = uuid.NewString()
	}
	notification.CreatedAt = time.Now()
	r.notifications = append(r.notifications, notification)
	return nil
}

func (r *fakeNotificationRepo) CreateBulk(notifications []*models.Notification) error {
	for _, n := range notifications {
		if err := r.Create(n); err != nil {
			return err
		}
	}
	return nil
}

func (r *fakeNotificationRepo) FindByID(id string) (*models.Notification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, n := range r.notifications {
		if n.ID == id {
			return n, nil
		}
	}
	return nil, repositories.ErrNotificationNotFound
}

func (r *fakeNotificationRepo) FindUserNotifications(userID string, criteria repositories.NotificationCriteria) ([]models.Notification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	limit := criteria.Limit
	if limit <= 0 {
		limit = 50
	}

	var out []models.Notification
	for _, n := range r.notifications {
		if n.UserID != userID {
			continue
		}
		if criteria.UnreadOnly && n.Read {
			continue
		}
		out = append(out, *n)
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func (r *fakeNotificationRepo) MarkAsRead(userID, notificationID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, n := range r.notifications {
		if n.ID == notificationID && n.UserID == userID {
			now := time.Now()
			n.Read = true
			n.ReadAt = &now
			return nil
		}
	}
	return repositories.ErrNotificationNotFound
}

func (r *fakeNotificationRepo) MarkAllAsRead(userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now()
	for _, n := range r.notifications {
		if n.UserID == userID && !n.Read {
			n.Read = true
			n.ReadAt = &now
		}
	}
	return nil
}

func (r *fakeNotificationRepo) CountUnread(userID string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var count int64
	for _, n := range r.notifications {
		if n.UserID == userID && !n.Read {
			count++
		}
	}
	return count, nil
}

func (r *fakeNotificationRepo) byUser(userID string) []*models.Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.Notification
	for _, n := range r.notifications {
		if n.UserID == userID {
			out = append(out, n)
		}
	}
	return out
}

// recordingPusher captures realtime pushes for assertions.
type recordingPusher struct {
	mu     sync.Mutex
	pushes []recordedPush
}

type recordedPush struct {
	UserID string
	Event  string
}

func (p *recordingPusher) PushToUser(userID string, event string, payload interface{}) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.pushes = append(p.pushes, recordedPush{UserID: userID, Event: event})
}

func (p *recordingPusher) pushed(userID, event string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, push := range p.pushes {
		if push.UserID == userID && push.Event == event {
			return true
		}
	}
	return false
}

func testMailer() *email.Mailer {
	return email.NewMailer(email.NewNoopProvider(), "ResolveNow", "no-reply@resolvenow.local")
}

// setTestConfig installs a minimal config so token generation works
// without a config file on disk.
func setTestConfig() {
	cfg := &config.Config{}
	cfg.JWT.Secret = "test-secret"
	cfg.JWT.TTL = 60
	cfg.FrontendURL = "http://localhost:3000"
	config.AppConfig = cfg
}
