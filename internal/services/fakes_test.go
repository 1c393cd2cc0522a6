package services

import (
	"time"

	"github.com/adreach/campaign-workflow-backend/internal/database/repository"
	"github.com/adreach/campaign-workflow-backend/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// In-memory fakes standing in for the gorm repositories.

type memUserRepo struct {
	users map[string]*models.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: make(map[string]*models.User)}
}

func (m *memUserRepo) Create(user *models.User) error {
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	m.users[user.ID] = user
	return nil
}

func (m *memUserRepo) GetByID(id string) (*models.User, error) {
	user, ok := m.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return user, nil
}

func (m *memUserRepo) List() ([]*models.User, error) {
	out := make([]*models.User, 0, len(m.users))
	for _, u := range m.users {
		out = append(out, u)
	}
	return out, nil
}

func (m *memUserRepo) Update(user *models.User) error {
	m.users[user.ID] = user
	return nil
}

func (m *memUserRepo) AdminIDs() ([]string, error) {
	var ids []string
	for _, u := range m.users {
		if u.IsAdmin() {
			ids = append(ids, u.ID)
		}
	}
	return ids, nil
}

func (m *memUserRepo) CompanyTeamIDs(companyID, excludeUserID string) ([]string, error) {
	var ids []string
	for _, u := range m.users {
		if u.CompanyID != nil && *u.CompanyID == companyID && u.ID != excludeUserID {
			ids = append(ids, u.ID)
		}
	}
	return ids, nil
}

type memCompanyRepo struct {
	companies map[string]*models.Company
	accounts  map[string][]*models.CompanyAccountID
}

func newMemCompanyRepo() *memCompanyRepo {
	return &memCompanyRepo{
		companies: make(map[string]*models.Company),
		accounts:  make(map[string][]*models.CompanyAccountID),
	}
}

func (m *memCompanyRepo) Create(company *models.Company) error {
	if company.ID == "" {
		company.ID = uuid.New().String()
	}
	m.companies[company.ID] = company
	return nil
}

func (m *memCompanyRepo) GetByID(id string) (*models.Company, error) {
	company, ok := m.companies[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return company, nil
}

func (m *memCompanyRepo) List() ([]*models.Company, error) {
	out := make([]*models.Company, 0, len(m.companies))
	for _, c := range m.companies {
		out = append(out, c)
	}
	return out, nil
}

func (m *memCompanyRepo) Update(company *models.Company) error {
	m.companies[company.ID] = company
	return nil
}

func (m *memCompanyRepo) Delete(id string) error {
	delete(m.companies, id)
	return nil
}

func (m *memCompanyRepo) AddAccountID(account *models.CompanyAccountID) error {
	if account.ID == "" {
		account.ID = uuid.New().String()
	}
	m.accounts[account.CompanyID] = append(m.accounts[account.CompanyID], account)
	return nil
}

func (m *memCompanyRepo) ListAccountIDs(companyID string) ([]*models.CompanyAccountID, error) {
	return m.accounts[companyID], nil
}

func (m *memCompanyRepo) DeleteAccountID(companyID, accountID string) error {
	kept := m.accounts[companyID][:0]
	for _, a := range m.accounts[companyID] {
		if a.ID == accountID {
			continue
		}
		kept = append(kept, a)
	}
	m.accounts[companyID] = kept
	return nil
}

type memCampaignRepo struct {
	campaigns map[string]*models.Campaign
	order     []string
}

func newMemCampaignRepo() *memCampaignRepo {
	return &memCampaignRepo{campaigns: make(map[string]*models.Campaign)}
}

func (m *memCampaignRepo) Create(campaign *models.Campaign) error {
	if campaign.ID == "" {
		campaign.ID = uuid.New().String()
	}
	campaign.CreatedAt = time.Now()
	campaign.UpdatedAt = campaign.CreatedAt
	m.campaigns[campaign.ID] = campaign
	m.order = append(m.order, campaign.ID)
	return nil
}

func (m *memCampaignRepo) GetByID(id string) (*models.Campaign, error) {
	campaign, ok := m.campaigns[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *campaign
	return &copied, nil
}

func (m *memCampaignRepo) ListByClient(clientID string, includeArchived bool) ([]*models.Campaign, error) {
	return m.ListByClients([]string{clientID}, includeArchived)
}

func (m *memCampaignRepo) ListByClients(clientIDs []string, includeArchived bool) ([]*models.Campaign, error) {
	wanted := make(map[string]bool, len(clientIDs))
	for _, id := range clientIDs {
		wanted[id] = true
	}
	var out []*models.Campaign
	for _, id := range m.order {
		c := m.campaigns[id]
		if !wanted[c.ClientID] {
			continue
		}
		if c.Archived && !includeArchived {
			continue
		}
		copied := *c
		out = append(out, &copied)
	}
	return out, nil
}

func (m *memCampaignRepo) ListAll(includeArchived bool) ([]*models.Campaign, error) {
	var out []*models.Campaign
	for _, id := range m.order {
		c := m.campaigns[id]
		if c.Archived && !includeArchived {
			continue
		}
		copied := *c
		out = append(out, &copied)
	}
	return out, nil
}

func (m *memCampaignRepo) Update(campaign *models.Campaign) error {
	if _, ok := m.campaigns[campaign.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	campaign.UpdatedAt = time.Now()
	copied := *campaign
	m.campaigns[campaign.ID] = &copied
	return nil
}

func (m *memCampaignRepo) UpdateStatusCAS(id, fromStatus, toStatus string, approvedAt *time.Time) (bool, error) {
	campaign, ok := m.campaigns[id]
	if !ok || campaign.Status != fromStatus {
		return false, nil
	}
	campaign.Status = toStatus
	if approvedAt != nil {
		campaign.ApprovedAt = approvedAt
	}
	campaign.UpdatedAt = time.Now()
	return true, nil
}

func (m *memCampaignRepo) UpdateAudiences(id string, audiences models.AudienceList) error {
	campaign, ok := m.campaigns[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	campaign.Audiences = audiences
	campaign.UpdatedAt = time.Now()
	return nil
}

func (m *memCampaignRepo) SetArchived(id string, archived bool) error {
	campaign, ok := m.campaigns[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	campaign.Archived = archived
	return nil
}

type memRequestRepo struct {
	requests map[string]*models.AudienceRequest
	order    []string
}

func newMemRequestRepo() *memRequestRepo {
	return &memRequestRepo{requests: make(map[string]*models.AudienceRequest)}
}

func (m *memRequestRepo) Create(request *models.AudienceRequest) error {
	if request.ID == "" {
		request.ID = uuid.New().String()
	}
	if request.Status == "" {
		request.Status = models.RequestStatusPending
	}
	request.CreatedAt = time.Now()
	m.requests[request.ID] = request
	m.order = append(m.order, request.ID)
	return nil
}

func (m *memRequestRepo) GetByID(id string) (*models.AudienceRequest, error) {
	request, ok := m.requests[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *request
	return &copied, nil
}

func (m *memRequestRepo) GetByIDForUpdate(id string) (*models.AudienceRequest, error) {
	return m.GetByID(id)
}

func (m *memRequestRepo) ListByClient(clientID string, includeArchived bool) ([]*models.AudienceRequest, error) {
	var out []*models.AudienceRequest
	for _, id := range m.order {
		r := m.requests[id]
		if r.ClientID != clientID {
			continue
		}
		if r.Archived && !includeArchived {
			continue
		}
		copied := *r
		out = append(out, &copied)
	}
	return out, nil
}

func (m *memRequestRepo) ListAll(status string, includeArchived bool) ([]*models.AudienceRequest, error) {
	var out []*models.AudienceRequest
	for _, id := range m.order {
		r := m.requests[id]
		if status != "" && r.Status != status {
			continue
		}
		if r.Archived && !includeArchived {
			continue
		}
		copied := *r
		out = append(out, &copied)
	}
	return out, nil
}

func (m *memRequestRepo) Update(request *models.AudienceRequest) error {
	if _, ok := m.requests[request.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	copied := *request
	m.requests[request.ID] = &copied
	return nil
}

func (m *memRequestRepo) SetArchived(id string, archived bool) error {
	request, ok := m.requests[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	request.Archived = archived
	return nil
}

type memCommentRepo struct {
	comments map[string]*models.CampaignComment
	order    []string
	users    *memUserRepo
}

func newMemCommentRepo(users *memUserRepo) *memCommentRepo {
	return &memCommentRepo{comments: make(map[string]*models.CampaignComment), users: users}
}

func (m *memCommentRepo) Create(comment *models.CampaignComment) error {
	if comment.ID == "" {
		comment.ID = uuid.New().String()
	}
	comment.CreatedAt = time.Now()
	m.comments[comment.ID] = comment
	m.order = append(m.order, comment.ID)
	return nil
}

func (m *memCommentRepo) GetByID(id string) (*models.CampaignComment, error) {
	comment, ok := m.comments[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *comment
	return &copied, nil
}

func (m *memCommentRepo) ListByCampaign(campaignID string) ([]*models.CampaignComment, error) {
	var out []*models.CampaignComment
	for _, id := range m.order {
		c := m.comments[id]
		if c.CampaignID != campaignID {
			continue
		}
		copied := *c
		if author, ok := m.users.users[c.AuthorID]; ok {
			copied.Author = *author
		}
		out = append(out, &copied)
	}
	return out, nil
}

type memHistoryRepo struct {
	entries []*models.CampaignWorkflowHistory
}

func (m *memHistoryRepo) Create(entry *models.CampaignWorkflowHistory) error {
	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	entry.CreatedAt = time.Now()
	m.entries = append(m.entries, entry)
	return nil
}

func (m *memHistoryRepo) ListByCampaign(campaignID string) ([]*models.CampaignWorkflowHistory, error) {
	var out []*models.CampaignWorkflowHistory
	for _, e := range m.entries {
		if e.CampaignID == campaignID {
			out = append(out, e)
		}
	}
	return out, nil
}

type memActivityRepo struct {
	activities []*models.CampaignActivity
}

func (m *memActivityRepo) Create(activity *models.CampaignActivity) error {
	if activity.ID == "" {
		activity.ID = uuid.New().String()
	}
	activity.CreatedAt = time.Now()
	m.activities = append(m.activities, activity)
	return nil
}

func (m *memActivityRepo) ListByCampaign(campaignID string) ([]*models.CampaignActivity, error) {
	var out []*models.CampaignActivity
	for _, a := range m.activities {
		if a.CampaignID == campaignID {
			out = append(out, a)
		}
	}
	return out, nil
}

type memNotificationRepo struct {
	notifications []*models.Notification
}

func (m *memNotificationRepo) Create(notification *models.Notification) error {
	if notification.ID == "" {
		notification.ID = uuid.New().String()
	}
	notification.CreatedAt = time.Now()
	m.notifications = append(m.notifications, notification)
	return nil
}

func (m *memNotificationRepo) ListByRecipient(recipientID string) ([]*models.Notification, error) {
	var out []*models.Notification
	for _, n := range m.notifications {
		if n.RecipientUserID == recipientID {
			out = append(out, n)
		}
	}
	return out, nil
}

func (m *memNotificationRepo) UnreadCount(recipientID string) (int64, error) {
	var count int64
	for _, n := range m.notifications {
		if n.RecipientUserID == recipientID && !n.Read {
			count++
		}
	}
	return count, nil
}

func (m *memNotificationRepo) MarkRead(id, recipientID string) error {
	for _, n := range m.notifications {
		if n.ID == id && n.RecipientUserID == recipientID {
			n.Read = true
		}
	}
	return nil
}

func (m *memNotificationRepo) MarkAllRead(recipientID string) error {
	for _, n := range m.notifications {
		if n.RecipientUserID == recipientID {
			n.Read = true
		}
	}
	return nil
}

func (m *memNotificationRepo) Delete(id, recipientID string) error {
	kept := m.notifications[:0]
	for _, n := range m.notifications {
		if n.ID == id && n.RecipientUserID == recipientID {
			continue
		}
		kept = append(kept, n)
	}
	m.notifications = kept
	return nil
}

// fakeTxManager runs the function against the shared in-memory stores. The
// fakes have no transactional rollback; tests assert on committed outcomes.
type fakeTxManager struct {
	stores *repository.Stores
}

func (m *fakeTxManager) Transaction(fn func(stores *repository.Stores) error) error {
	return fn(m.stores)
}

type fakePublisher struct {
	messages []map[string]interface{}
}

func (p *fakePublisher) PublishMessage(queueName string, message map[string]interface{}) error {
	p.messages = append(p.messages, message)
	return nil
}

// testEnv bundles the fakes and the services under test.
type testEnv struct {
	users         *memUserRepo
	campaigns     *memCampaignRepo
	requests      *memRequestRepo
	comments      *memCommentRepo
	histories     *memHistoryRepo
	activities    *memActivityRepo
	notifications *memNotificationRepo
	publisher     *fakePublisher

	activityService *ActivityService
	notifier        *NotificationService
	campaignService *CampaignService
	requestService  *RequestService
	commentService  *CommentService
}

func newTestEnv() *testEnv {
	env := &testEnv{
		users:         newMemUserRepo(),
		campaigns:     newMemCampaignRepo(),
		requests:      newMemRequestRepo(),
		histories:     &memHistoryRepo{},
		activities:    &memActivityRepo{},
		notifications: &memNotificationRepo{},
		publisher:     &fakePublisher{},
	}
	env.comments = newMemCommentRepo(env.users)

	stores := &repository.Stores{
		Users:         env.users,
		Campaigns:     env.campaigns,
		Requests:      env.requests,
		Comments:      env.comments,
		Histories:     env.histories,
		Activities:    env.activities,
		Notifications: env.notifications,
	}
	tx := &fakeTxManager{stores: stores}

	env.activityService = NewActivityService(env.activities, env.histories)
	env.notifier = NewNotificationService(env.notifications, env.users, env.publisher)
	env.campaignService = NewCampaignService(
		tx, env.campaigns, env.requests, env.users, env.histories,
		env.activityService, env.notifier,
	)
	env.requestService = NewRequestService(
		tx, env.requests, env.users, env.histories,
		env.activityService, env.notifier,
	)
	env.commentService = NewCommentService(
		env.comments, env.campaigns, env.users,
		env.activityService, env.notifier,
	)
	return env
}

func (env *testEnv) addUser(role string, companyID *string) *models.User {
	user := &models.User{
		ID:        uuid.New().String(),
		Email:     uuid.New().String() + "@example.com",
		Name:      "Test User",
		Role:      role,
		CompanyID: companyID,
	}
	env.users.users[user.ID] = user
	return user
}

func (env *testEnv) addDraft(owner *models.User) *models.Campaign {
	campaign := &models.Campaign{
		ClientID: owner.ID,
		Name:     "Q3 Travel Push",
		Budget:   5000,
		Status:   models.StatusDraft,
	}
	env.campaigns.Create(campaign)
	return campaign
}
