package usecase

import (
	"context"
	"errors"
	"io"
	"sort"
	"sync"
	"time"

	"carelink-backend/internal/domain/entity"
	"carelink-backend/internal/service"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var errInjected = errors.New("injected store failure")

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

// memStore is an in-memory row store. Writes made inside a fake transaction
// register an undo step that runs if the transaction fails.
type memStore struct {
	mu sync.Mutex

	users         map[string]*entity.User
	personalInfos map[string]*entity.PersonalInfo
	doctors       map[string]*entity.Doctor
	plans         map[string]*entity.Plan
	subs          map[uuid.UUID]*entity.Subscription
	reports       map[uuid.UUID]*entity.Report
	feedback      map[uuid.UUID]*entity.Feedback
	prescriptions map[uuid.UUID]*entity.Prescription
	presOrders    map[uuid.UUID]*entity.PresOrder
	orders        map[uuid.UUID]*entity.Order
	audits        []entity.AuditLog

	fail   map[string]error
	seq    int
	nextID int64
}

func newMemStore() *memStore {
	s := &memStore{
		users:         map[string]*entity.User{},
		personalInfos: map[string]*entity.PersonalInfo{},
		doctors:       map[string]*entity.Doctor{},
		plans:         map[string]*entity.Plan{},
		subs:          map[uuid.UUID]*entity.Subscription{},
		reports:       map[uuid.UUID]*entity.Report{},
		feedback:      map[uuid.UUID]*entity.Feedback{},
		prescriptions: map[uuid.UUID]*entity.Prescription{},
		presOrders:    map[uuid.UUID]*entity.PresOrder{},
		orders:        map[uuid.UUID]*entity.Order{},
		fail:          map[string]error{},
	}
	for _, p := range []entity.Plan{
		{Name: "Basic", Price: decimal.RequireFromString("9.99"), Frequency: entity.FrequencyMonthly, ReportUploadLimit: 3},
		{Name: "Standard", Price: decimal.RequireFromString("24.99"), Frequency: entity.FrequencyQuarterly, ReportUploadLimit: 10},
		{Name: "Premium", Price: decimal.RequireFromString("89.99"), Frequency: "/year", ReportUploadLimit: 40},
	} {
		plan := p
		s.plans[plan.Name] = &plan
	}
	return s
}

func (s *memStore) failOn(op string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fail[op] = errInjected
}

// record must be called with mu held.
func (s *memStore) record(ctx context.Context, undo func()) {
	if tx, ok := ctx.Value(fakeTxKey{}).(*fakeTx); ok {
		tx.undo = append(tx.undo, undo)
	}
}

func (s *memStore) tick() time.Time {
	s.seq++
	return day(2024, time.January, 1).Add(time.Duration(s.seq) * time.Second)
}

type fakeTxKey struct{}

type fakeTx struct {
	undo []func()
}

type fakeTransactor struct {
	store *memStore
}

func (t *fakeTransactor) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := ctx.Value(fakeTxKey{}).(*fakeTx); ok {
		return fn(ctx)
	}

	tx := &fakeTx{}
	err := fn(context.WithValue(ctx, fakeTxKey{}, tx))
	if err != nil {
		t.store.mu.Lock()
		for i := len(tx.undo) - 1; i >= 0; i-- {
			tx.undo[i]()
		}
		t.store.mu.Unlock()
	}
	return err
}

// users

type fakeUserRepo struct{ s *memStore }

func (r *fakeUserRepo) Create(ctx context.Context, user *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail["user.create"]; err != nil {
		return err
	}
	if _, ok := r.s.users[user.Email]; ok {
		return gorm.ErrDuplicatedKey
	}
	_ = user.BeforeCreate(nil)
	row := *user
	r.s.users[user.Email] = &row
	r.s.record(ctx, func() { delete(r.s.users, row.Email) })
	return nil
}

func (r *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if u, ok := r.s.users[email]; ok {
		row := *u
		return &row, nil
	}
	return nil, nil
}

func (r *fakeUserRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if u.ID == id {
			row := *u
			return &row, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) FindAll(ctx context.Context) ([]entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	users := make([]entity.User, 0, len(r.s.users))
	for _, u := range r.s.users {
		users = append(users, *u)
	}
	return users, nil
}

func (r *fakeUserRepo) UpdateImage(ctx context.Context, email string, image []byte) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.users[email]
	if !ok {
		return false, nil
	}
	u.Image = image
	return true, nil
}

type fakePersonalInfoRepo struct{ s *memStore }

func (r *fakePersonalInfoRepo) Create(ctx context.Context, info *entity.PersonalInfo) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail["personal_info.create"]; err != nil {
		return err
	}
	if _, ok := r.s.personalInfos[info.UserEmail]; ok {
		return gorm.ErrDuplicatedKey
	}
	row := *info
	r.s.personalInfos[info.UserEmail] = &row
	r.s.record(ctx, func() { delete(r.s.personalInfos, row.UserEmail) })
	return nil
}

func (r *fakePersonalInfoRepo) FindByEmail(ctx context.Context, email string) (*entity.PersonalInfo, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if p, ok := r.s.personalInfos[email]; ok {
		row := *p
		return &row, nil
	}
	return nil, nil
}

func (r *fakePersonalInfoRepo) Update(ctx context.Context, info *entity.PersonalInfo) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.personalInfos[info.UserEmail]; !ok {
		return false, nil
	}
	row := *info
	r.s.personalInfos[info.UserEmail] = &row
	return true, nil
}

func (r *fakePersonalInfoRepo) FindPatientsByDoctor(ctx context.Context, doctorEmail string) ([]entity.PatientSummary, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	seen := map[string]bool{}
	var patients []entity.PatientSummary
	for _, rep := range r.s.reports {
		if rep.DoctorEmail != doctorEmail || seen[rep.UserEmail] {
			continue
		}
		seen[rep.UserEmail] = true
		summary := entity.PatientSummary{Email: rep.UserEmail}
		if u, ok := r.s.users[rep.UserEmail]; ok {
			summary.Name = u.Name
		}
		if p, ok := r.s.personalInfos[rep.UserEmail]; ok {
			summary.Birthday = p.Birthday
			summary.Work = p.Work
		}
		patients = append(patients, summary)
	}
	return patients, nil
}

// doctors

type fakeDoctorRepo struct{ s *memStore }

func (r *fakeDoctorRepo) Create(ctx context.Context, doctor *entity.Doctor) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.doctors[doctor.Email]; ok {
		return gorm.ErrDuplicatedKey
	}
	_ = doctor.BeforeCreate(nil)
	row := *doctor
	r.s.doctors[doctor.Email] = &row
	r.s.record(ctx, func() { delete(r.s.doctors, row.Email) })
	return nil
}

func (r *fakeDoctorRepo) FindByEmail(ctx context.Context, email string) (*entity.Doctor, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if d, ok := r.s.doctors[email]; ok {
		row := *d
		return &row, nil
	}
	return nil, nil
}

func (r *fakeDoctorRepo) FindByEmailWithReviews(ctx context.Context, email string) (*entity.Doctor, error) {
	return r.FindByEmail(ctx, email)
}

func (r *fakeDoctorRepo) FindAll(ctx context.Context) ([]entity.Doctor, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	doctors := make([]entity.Doctor, 0, len(r.s.doctors))
	for _, d := range r.s.doctors {
		doctors = append(doctors, *d)
	}
	return doctors, nil
}

func (r *fakeDoctorRepo) UpdateImage(ctx context.Context, email string, image []byte) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	d, ok := r.s.doctors[email]
	if !ok {
		return false, nil
	}
	d.Image = image
	return true, nil
}

// plans and subscriptions

type fakePlanRepo struct{ s *memStore }

func (r *fakePlanRepo) FindAll(ctx context.Context) ([]entity.Plan, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	plans := make([]entity.Plan, 0, len(r.s.plans))
	for _, p := range r.s.plans {
		plans = append(plans, *p)
	}
	sort.Slice(plans, func(i, j int) bool { return plans[i].Price.LessThan(plans[j].Price) })
	return plans, nil
}

func (r *fakePlanRepo) FindByName(ctx context.Context, name string) (*entity.Plan, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if p, ok := r.s.plans[name]; ok {
		row := *p
		return &row, nil
	}
	return nil, nil
}

type fakeSubscriptionRepo struct{ s *memStore }

func (r *fakeSubscriptionRepo) FindCurrent(ctx context.Context, userEmail string, today time.Time, forUpdate bool) (*entity.Subscription, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var current *entity.Subscription
	for _, sub := range r.s.subs {
		if sub.UserEmail != userEmail || !sub.IsCurrent(today) {
			continue
		}
		if current == nil || sub.EndDate.After(current.EndDate) {
			current = sub
		}
	}
	if current == nil {
		return nil, nil
	}
	row := *current
	if plan, ok := r.s.plans[row.PlanName]; ok {
		row.Plan = *plan
	}
	return &row, nil
}

func (r *fakeSubscriptionRepo) Create(ctx context.Context, sub *entity.Subscription) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.subs {
		if existing.UserEmail == sub.UserEmail && existing.Status == entity.SubscriptionStatusActive {
			return gorm.ErrDuplicatedKey
		}
	}
	_ = sub.BeforeCreate(nil)
	row := *sub
	row.Plan = entity.Plan{}
	r.s.subs[row.ID] = &row
	r.s.record(ctx, func() { delete(r.s.subs, row.ID) })
	return nil
}

func (r *fakeSubscriptionRepo) Renew(ctx context.Context, sub *entity.Subscription) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	old, ok := r.s.subs[sub.ID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	previous := *old
	row := *sub
	row.Plan = entity.Plan{}
	r.s.subs[sub.ID] = &row
	r.s.record(ctx, func() { r.s.subs[previous.ID] = &previous })
	return nil
}

func (r *fakeSubscriptionRepo) ExpireStale(ctx context.Context, userEmail string, today time.Time) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var n int64
	for _, sub := range r.s.subs {
		if sub.UserEmail == userEmail && sub.Status == entity.SubscriptionStatusActive && sub.EndDate.Before(today) {
			stale := sub
			stale.Status = entity.SubscriptionStatusExpired
			r.s.record(ctx, func() { stale.Status = entity.SubscriptionStatusActive })
			n++
		}
	}
	return n, nil
}

func (r *fakeSubscriptionRepo) IncrementReportsUploaded(ctx context.Context, id uuid.UUID, limit int) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	sub, ok := r.s.subs[id]
	if !ok || sub.ReportsUploaded >= limit {
		return false, nil
	}
	sub.ReportsUploaded++
	r.s.record(ctx, func() { sub.ReportsUploaded-- })
	return true, nil
}

// reports and feedback

type fakeReportRepo struct{ s *memStore }

func (r *fakeReportRepo) Create(ctx context.Context, report *entity.Report) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail["report.create"]; err != nil {
		return err
	}
	_ = report.BeforeCreate(nil)
	report.CreatedAt = r.s.tick()
	row := *report
	r.s.reports[row.ID] = &row
	r.s.record(ctx, func() { delete(r.s.reports, row.ID) })
	return nil
}

func (r *fakeReportRepo) FindByID(ctx context.Context, id uuid.UUID, forUpdate bool) (*entity.Report, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if rep, ok := r.s.reports[id]; ok {
		row := *rep
		return &row, nil
	}
	return nil, nil
}

func (r *fakeReportRepo) FindLatestByUser(ctx context.Context, userEmail string, limit int) ([]entity.Report, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var reports []entity.Report
	for _, rep := range r.s.reports {
		if rep.UserEmail == userEmail {
			reports = append(reports, *rep)
		}
	}
	sort.Slice(reports, func(i, j int) bool { return reports[i].CreatedAt.After(reports[j].CreatedAt) })
	if len(reports) > limit {
		reports = reports[:limit]
	}
	return reports, nil
}

func (r *fakeReportRepo) FindByDoctor(ctx context.Context, doctorEmail string) ([]entity.Report, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var reports []entity.Report
	for _, rep := range r.s.reports {
		if rep.DoctorEmail == doctorEmail {
			reports = append(reports, *rep)
		}
	}
	return reports, nil
}

func (r *fakeReportRepo) MarkReviewed(ctx context.Context, id uuid.UUID) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail["report.mark_reviewed"]; err != nil {
		return false, err
	}
	rep, ok := r.s.reports[id]
	if !ok || rep.Status != entity.ReportStatusPending {
		return false, nil
	}
	rep.Status = entity.ReportStatusReviewed
	r.s.record(ctx, func() { rep.Status = entity.ReportStatusPending })
	return true, nil
}

type fakeFeedbackRepo struct{ s *memStore }

func (r *fakeFeedbackRepo) Create(ctx context.Context, feedback *entity.Feedback) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.feedback[feedback.ReportID]; ok {
		return gorm.ErrDuplicatedKey
	}
	_ = feedback.BeforeCreate(nil)
	row := *feedback
	r.s.feedback[row.ReportID] = &row
	r.s.record(ctx, func() { delete(r.s.feedback, row.ReportID) })
	return nil
}

func (r *fakeFeedbackRepo) FindByReportID(ctx context.Context, reportID uuid.UUID) (*entity.Feedback, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if f, ok := r.s.feedback[reportID]; ok {
		row := *f
		return &row, nil
	}
	return nil, nil
}

// prescriptions

type fakePrescriptionRepo struct{ s *memStore }

func (r *fakePrescriptionRepo) Create(ctx context.Context, p *entity.Prescription) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail["prescription.create"]; err != nil {
		return err
	}
	_ = p.BeforeCreate(nil)
	p.CreatedAt = r.s.tick()
	row := *p
	r.s.prescriptions[row.ID] = &row
	r.s.record(ctx, func() { delete(r.s.prescriptions, row.ID) })
	return nil
}

func (r *fakePrescriptionRepo) FindByID(ctx context.Context, id uuid.UUID, forUpdate bool) (*entity.Prescription, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if p, ok := r.s.prescriptions[id]; ok {
		row := *p
		return &row, nil
	}
	return nil, nil
}

func (r *fakePrescriptionRepo) FindPending(ctx context.Context) ([]entity.Prescription, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var pending []entity.Prescription
	for _, p := range r.s.prescriptions {
		if p.Status == entity.PrescriptionStatusPending {
			pending = append(pending, *p)
		}
	}
	return pending, nil
}

func (r *fakePrescriptionRepo) MarkProcessed(ctx context.Context, id uuid.UUID) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail["prescription.mark_processed"]; err != nil {
		return false, err
	}
	p, ok := r.s.prescriptions[id]
	if !ok || p.Status != entity.PrescriptionStatusPending {
		return false, nil
	}
	p.Status = entity.PrescriptionStatusProcessed
	r.s.record(ctx, func() { p.Status = entity.PrescriptionStatusPending })
	return true, nil
}

type fakePresOrderRepo struct{ s *memStore }

func (r *fakePresOrderRepo) Create(ctx context.Context, order *entity.PresOrder) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.presOrders {
		if existing.PrescriptionID == order.PrescriptionID {
			return gorm.ErrDuplicatedKey
		}
	}
	_ = order.BeforeCreate(nil)
	row := *order
	r.s.presOrders[row.ID] = &row
	r.s.record(ctx, func() { delete(r.s.presOrders, row.ID) })
	return nil
}

// orders

type fakeOrderRepo struct{ s *memStore }

func (r *fakeOrderRepo) Create(ctx context.Context, order *entity.Order) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	_ = order.BeforeCreate(nil)
	order.CreatedAt = r.s.tick()
	row := *order
	r.s.orders[row.ID] = &row
	r.s.record(ctx, func() { delete(r.s.orders, row.ID) })
	return nil
}

func (r *fakeOrderRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if o, ok := r.s.orders[id]; ok {
		row := *o
		return &row, nil
	}
	return nil, nil
}

func (r *fakeOrderRepo) FindByUser(ctx context.Context, userEmail string) ([]entity.Order, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var orders []entity.Order
	for _, o := range r.s.orders {
		if o.UserEmail == userEmail {
			orders = append(orders, *o)
		}
	}
	return orders, nil
}

func (r *fakeOrderRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status entity.OrderStatus) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	o, ok := r.s.orders[id]
	if !ok {
		return false, nil
	}
	previous := o.OrderStatus
	o.OrderStatus = status
	r.s.record(ctx, func() { o.OrderStatus = previous })
	return true, nil
}

// audit

type fakeAuditLogRepo struct{ s *memStore }

func (r *fakeAuditLogRepo) Create(ctx context.Context, log *entity.AuditLog) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail["audit.create"]; err != nil {
		return err
	}
	r.s.nextID++
	log.ID = r.s.nextID
	log.CreatedAt = r.s.tick()
	r.s.audits = append(r.s.audits, *log)
	id := log.ID
	r.s.record(ctx, func() {
		for i := range r.s.audits {
			if r.s.audits[i].ID == id {
				r.s.audits = append(r.s.audits[:i], r.s.audits[i+1:]...)
				return
			}
		}
	})
	return nil
}

func (r *fakeAuditLogRepo) FindByActor(ctx context.Context, actorEmail string, limit, offset int) ([]entity.AuditLog, int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var logs []entity.AuditLog
	for i := len(r.s.audits) - 1; i >= 0; i-- {
		if r.s.audits[i].ActorEmail == actorEmail {
			logs = append(logs, r.s.audits[i])
		}
	}
	total := int64(len(logs))
	if offset >= len(logs) {
		return []entity.AuditLog{}, total, nil
	}
	logs = logs[offset:]
	if len(logs) > limit {
		logs = logs[:limit]
	}
	return logs, total, nil
}

func (r *fakeAuditLogRepo) FindByID(ctx context.Context, id int64) (*entity.AuditLog, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, l := range r.s.audits {
		if l.ID == id {
			row := l
			return &row, nil
		}
	}
	return nil, nil
}

func (s *memStore) auditActions() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	actions := make([]string, len(s.audits))
	for i, l := range s.audits {
		actions[i] = l.Action
	}
	return actions
}

// collaborators

type plainHasher struct{}

func (plainHasher) Hash(password string) (string, error) { return "hashed:" + password, nil }

func (plainHasher) Compare(hash, password string) error {
	if hash != "hashed:"+password {
		return service.ErrPasswordMismatch
	}
	return nil
}

type sentMail struct {
	to, subject, body string
}

type recordingNotifier struct {
	mu   sync.Mutex
	sent []sentMail
}

func (n *recordingNotifier) Notify(to, subject, body string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = append(n.sent, sentMail{to: to, subject: subject, body: body})
}

func (n *recordingNotifier) count() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.sent)
}

type stubLocker struct {
	err error
}

func (l stubLocker) Acquire(ctx context.Context, key string) (func(), error) {
	if l.err != nil {
		return nil, l.err
	}
	return func() {}, nil
}

type stubValidator struct {
	readable bool
	err      error
}

func (v stubValidator) ContainsText(ctx context.Context, image []byte) (bool, error) {
	return v.readable, v.err
}

// testEnv wires every usecase against one memStore.
type testEnv struct {
	store      *memStore
	transactor *fakeTransactor
	audit      service.AuditService
	notifier   *recordingNotifier
	log        *logrus.Logger
}

func newTestEnv() *testEnv {
	store := newMemStore()
	log := testLogger()
	return &testEnv{
		store:      store,
		transactor: &fakeTransactor{store: store},
		audit:      service.NewAuditService(log, &fakeAuditLogRepo{s: store}),
		notifier:   &recordingNotifier{},
		log:        log,
	}
}

func (e *testEnv) userUsecase() *userUsecase {
	return NewUserUsecase(e.log, e.transactor, &fakeUserRepo{s: e.store}, &fakePersonalInfoRepo{s: e.store},
		plainHasher{}, e.notifier, e.audit).(*userUsecase)
}

func (e *testEnv) subscriptionUsecase(now time.Time, locker service.Locker) *subscriptionUsecase {
	uc := NewSubscriptionUsecase(e.log, e.transactor, &fakePlanRepo{s: e.store}, &fakeSubscriptionRepo{s: e.store},
		&fakeUserRepo{s: e.store}, locker, e.audit).(*subscriptionUsecase)
	uc.now = fixedClock(now)
	return uc
}

func (e *testEnv) reportUsecase(now time.Time) *reportUsecase {
	uc := NewReportUsecase(e.log, e.transactor, &fakeReportRepo{s: e.store}, &fakeFeedbackRepo{s: e.store},
		&fakeSubscriptionRepo{s: e.store}, &fakeDoctorRepo{s: e.store}, e.audit).(*reportUsecase)
	uc.now = fixedClock(now)
	return uc
}

func (e *testEnv) prescriptionUsecase(validator service.ImageValidator) PrescriptionUsecase {
	return NewPrescriptionUsecase(e.log, e.transactor, &fakePrescriptionRepo{s: e.store}, &fakePresOrderRepo{s: e.store},
		validator, e.audit)
}

func (e *testEnv) addUser(email string) {
	e.store.mu.Lock()
	defer e.store.mu.Unlock()
	e.store.users[email] = &entity.User{ID: uuid.New(), Name: "Test User", Email: email, Password: "hashed:secret1"}
}

func (e *testEnv) addDoctor(email string) {
	e.store.mu.Lock()
	defer e.store.mu.Unlock()
	e.store.doctors[email] = &entity.Doctor{ID: uuid.New(), Name: "Dr Test", Email: email, Password: "hashed:secret1"}
}

func (e *testEnv) addSubscription(email, plan string, endDate time.Time, uploaded int) uuid.UUID {
	e.store.mu.Lock()
	defer e.store.mu.Unlock()
	sub := &entity.Subscription{
		ID:              uuid.New(),
		UserEmail:       email,
		PlanName:        plan,
		PurchaseDate:    endDate.AddDate(0, -1, 0),
		StartDate:       endDate.AddDate(0, -1, 0),
		EndDate:         endDate,
		Status:          entity.SubscriptionStatusActive,
		ReportsUploaded: uploaded,
	}
	e.store.subs[sub.ID] = sub
	return sub.ID
}

func (e *testEnv) subscription(id uuid.UUID) entity.Subscription {
	e.store.mu.Lock()
	defer e.store.mu.Unlock()
	return *e.store.subs[id]
}

func (e *testEnv) doctorUsecase() DoctorUsecase {
	return NewDoctorUsecase(e.log, e.transactor, &fakeDoctorRepo{s: e.store}, plainHasher{}, e.audit)
}
