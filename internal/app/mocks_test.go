package app

import (
	"context"
	"fmt"
	"sort"

	"github.com/wimarka-uic/lakra-sub002/internal/errs"
	"github.com/wimarka-uic/lakra-sub002/internal/ports/secondary"
)

// ============================================================================
// Mock Implementations
// ============================================================================

// mockSentenceRepository implements secondary.SentenceRepository for testing.
type mockSentenceRepository struct {
	sentences map[string]*secondary.SentenceRecord
	getErr    error
	createErr error
}

func newMockSentenceRepository() *mockSentenceRepository {
	return &mockSentenceRepository{sentences: make(map[string]*secondary.SentenceRecord)}
}

func (m *mockSentenceRepository) Create(ctx context.Context, sentence *secondary.SentenceRecord) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.sentences[sentence.ID] = sentence
	return nil
}

func (m *mockSentenceRepository) CreateBatch(ctx context.Context, sentences []*secondary.SentenceRecord) error {
	if m.createErr != nil {
		return m.createErr
	}
	for _, s := range sentences {
		m.sentences[s.ID] = s
	}
	return nil
}

func (m *mockSentenceRepository) GetByID(ctx context.Context, id string) (*secondary.SentenceRecord, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	if s, ok := m.sentences[id]; ok {
		return s, nil
	}
	return nil, errs.NotFoundf("sentence %s", id)
}

func (m *mockSentenceRepository) List(ctx context.Context, filters secondary.SentenceFilters) ([]*secondary.SentenceRecord, error) {
	var result []*secondary.SentenceRecord
	for _, s := range m.sentences {
		if filters.SourceLanguage != "" && s.SourceLanguage != filters.SourceLanguage {
			continue
		}
		if filters.TargetLanguage != "" && s.TargetLanguage != filters.TargetLanguage {
			continue
		}
		if filters.Domain != "" && s.Domain != filters.Domain {
			continue
		}
		if filters.ActiveOnly && !s.IsActive {
			continue
		}
		result = append(result, s)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (m *mockSentenceRepository) Deactivate(ctx context.Context, id string) error {
	s, ok := m.sentences[id]
	if !ok {
		return errs.NotFoundf("sentence %s", id)
	}
	s.IsActive = false
	return nil
}

func (m *mockSentenceRepository) NextUnannotated(ctx context.Context, annotatorID string) (*secondary.SentenceRecord, error) {
	// Mocks have no annotation membership; tests using this set it up
	// through the annotation mock's pair index.
	var ids []string
	for id := range m.sentences {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		if m.sentences[id].IsActive {
			return m.sentences[id], nil
		}
	}
	return nil, nil
}

func (m *mockSentenceRepository) GetNextID(ctx context.Context) (string, error) {
	return fmt.Sprintf("SENT-%03d", len(m.sentences)+1), nil
}

// mockAnnotationRepository implements secondary.AnnotationRepository for testing.
type mockAnnotationRepository struct {
	annotations map[string]*secondary.AnnotationRecord
	createErr   error
	updateErr   error
}

func newMockAnnotationRepository() *mockAnnotationRepository {
	return &mockAnnotationRepository{annotations: make(map[string]*secondary.AnnotationRecord)}
}

func (m *mockAnnotationRepository) Create(ctx context.Context, record *secondary.AnnotationRecord) error {
	if m.createErr != nil {
		return m.createErr
	}
	for _, a := range m.annotations {
		if a.SentenceID == record.SentenceID && a.AnnotatorID == record.AnnotatorID {
			return errs.Duplicatef("annotation for sentence %s by annotator %s", record.SentenceID, record.AnnotatorID)
		}
	}
	m.annotations[record.ID] = record
	return nil
}

func (m *mockAnnotationRepository) GetByID(ctx context.Context, id string) (*secondary.AnnotationRecord, error) {
	if a, ok := m.annotations[id]; ok {
		copied := *a
		return &copied, nil
	}
	return nil, errs.NotFoundf("annotation %s", id)
}

func (m *mockAnnotationRepository) GetBySentenceAndAnnotator(ctx context.Context, sentenceID, annotatorID string) (*secondary.AnnotationRecord, error) {
	for _, a := range m.annotations {
		if a.SentenceID == sentenceID && a.AnnotatorID == annotatorID {
			copied := *a
			return &copied, nil
		}
	}
	return nil, errs.NotFoundf("annotation for sentence %s by annotator %s", sentenceID, annotatorID)
}

func (m *mockAnnotationRepository) List(ctx context.Context, filters secondary.AnnotationFilters) ([]*secondary.AnnotationRecord, error) {
	var result []*secondary.AnnotationRecord
	for _, a := range m.annotations {
		if filters.SentenceID != "" && a.SentenceID != filters.SentenceID {
			continue
		}
		if filters.AnnotatorID != "" && a.AnnotatorID != filters.AnnotatorID {
			continue
		}
		if filters.Status != "" && a.Status != filters.Status {
			continue
		}
		result = append(result, a)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (m *mockAnnotationRepository) Update(ctx context.Context, record *secondary.AnnotationRecord) error {
	if m.updateErr != nil {
		return m.updateErr
	}
	if _, ok := m.annotations[record.ID]; !ok {
		return errs.NotFoundf("annotation %s", record.ID)
	}
	copied := *record
	m.annotations[record.ID] = &copied
	return nil
}

func (m *mockAnnotationRepository) UpdateStatus(ctx context.Context, id string, status string) error {
	a, ok := m.annotations[id]
	if !ok {
		return errs.NotFoundf("annotation %s", id)
	}
	a.Status = status
	return nil
}

func (m *mockAnnotationRepository) SetRecording(ctx context.Context, id string, url string, durationSeconds *int) error {
	a, ok := m.annotations[id]
	if !ok {
		return errs.NotFoundf("annotation %s", id)
	}
	a.VoiceRecordingURL = url
	a.VoiceRecordingDuration = durationSeconds
	return nil
}

func (m *mockAnnotationRepository) Delete(ctx context.Context, id string) error {
	if _, ok := m.annotations[id]; !ok {
		return errs.NotFoundf("annotation %s", id)
	}
	delete(m.annotations, id)
	return nil
}

func (m *mockAnnotationRepository) GetNextID(ctx context.Context) (string, error) {
	return fmt.Sprintf("ANN-%03d", len(m.annotations)+1), nil
}

// mockRevisionRepository implements secondary.RevisionRepository for testing.
type mockRevisionRepository struct {
	entries   []*secondary.RevisionRecord
	anns      *mockAnnotationRepository
	appendErr error
}

func newMockRevisionRepository(anns *mockAnnotationRepository) *mockRevisionRepository {
	return &mockRevisionRepository{anns: anns}
}

func (m *mockRevisionRepository) AppendApproval(ctx context.Context, rev *secondary.RevisionRecord) error {
	if m.appendErr != nil {
		return m.appendErr
	}
	rev.Seq = int64(len(m.entries) + 1)
	m.entries = append(m.entries, rev)
	return m.anns.UpdateStatus(ctx, rev.AnnotationID, "reviewed")
}

func (m *mockRevisionRepository) AppendRevision(ctx context.Context, rev *secondary.RevisionRecord, record *secondary.AnnotationRecord) error {
	if m.appendErr != nil {
		return m.appendErr
	}
	rev.Seq = int64(len(m.entries) + 1)
	m.entries = append(m.entries, rev)
	record.Status = "reviewed"
	return m.anns.Update(ctx, record)
}

func (m *mockRevisionRepository) ListByAnnotation(ctx context.Context, annotationID string) ([]*secondary.RevisionRecord, error) {
	var result []*secondary.RevisionRecord
	for _, e := range m.entries {
		if e.AnnotationID == annotationID {
			result = append(result, e)
		}
	}
	return result, nil
}

func (m *mockRevisionRepository) Latest(ctx context.Context, annotationID string) (*secondary.RevisionRecord, error) {
	for i := len(m.entries) - 1; i >= 0; i-- {
		if m.entries[i].AnnotationID == annotationID {
			return m.entries[i], nil
		}
	}
	return nil, nil
}

func (m *mockRevisionRepository) GetNextID(ctx context.Context) (string, error) {
	return fmt.Sprintf("REV-%03d", len(m.entries)+1), nil
}

// mockEvaluationRepository implements secondary.EvaluationRepository for testing.
type mockEvaluationRepository struct {
	evaluations map[string]*secondary.EvaluationRecord
}

func newMockEvaluationRepository() *mockEvaluationRepository {
	return &mockEvaluationRepository{evaluations: make(map[string]*secondary.EvaluationRecord)}
}

func (m *mockEvaluationRepository) Create(ctx context.Context, record *secondary.EvaluationRecord) error {
	for _, e := range m.evaluations {
		if e.AnnotationID == record.AnnotationID && e.EvaluatorID == record.EvaluatorID {
			return errs.Duplicatef("evaluation of %s by evaluator %s", record.AnnotationID, record.EvaluatorID)
		}
	}
	m.evaluations[record.ID] = record
	return nil
}

func (m *mockEvaluationRepository) GetByID(ctx context.Context, id string) (*secondary.EvaluationRecord, error) {
	if e, ok := m.evaluations[id]; ok {
		copied := *e
		return &copied, nil
	}
	return nil, errs.NotFoundf("evaluation %s", id)
}

func (m *mockEvaluationRepository) ListByAnnotation(ctx context.Context, annotationID string) ([]*secondary.EvaluationRecord, error) {
	var result []*secondary.EvaluationRecord
	for _, e := range m.evaluations {
		if e.AnnotationID == annotationID {
			result = append(result, e)
		}
	}
	return result, nil
}

func (m *mockEvaluationRepository) ListByEvaluator(ctx context.Context, evaluatorID string) ([]*secondary.EvaluationRecord, error) {
	var result []*secondary.EvaluationRecord
	for _, e := range m.evaluations {
		if e.EvaluatorID == evaluatorID {
			result = append(result, e)
		}
	}
	return result, nil
}

func (m *mockEvaluationRepository) Update(ctx context.Context, record *secondary.EvaluationRecord) error {
	if _, ok := m.evaluations[record.ID]; !ok {
		return errs.NotFoundf("evaluation %s", record.ID)
	}
	copied := *record
	m.evaluations[record.ID] = &copied
	return nil
}

func (m *mockEvaluationRepository) SummaryForEvaluator(ctx context.Context, evaluatorID string) (*secondary.EvaluationSummary, error) {
	summary := &secondary.EvaluationSummary{}
	var sum, scored int
	for _, e := range m.evaluations {
		if e.EvaluatorID != evaluatorID {
			continue
		}
		summary.Total++
		if e.Status == "completed" {
			summary.Completed++
		}
		if e.OverallEvaluationScore != nil {
			sum += *e.OverallEvaluationScore
			scored++
		}
	}
	if scored > 0 {
		summary.AverageOverall = float64(sum) / float64(scored)
	}
	return summary, nil
}

func (m *mockEvaluationRepository) GetNextID(ctx context.Context) (string, error) {
	return fmt.Sprintf("EVAL-%03d", len(m.evaluations)+1), nil
}

// mockUserRepository implements secondary.UserRepository for testing.
type mockUserRepository struct {
	users map[string]*secondary.UserRecord
}

func newMockUserRepository() *mockUserRepository {
	return &mockUserRepository{users: make(map[string]*secondary.UserRecord)}
}

func (m *mockUserRepository) Create(ctx context.Context, user *secondary.UserRecord) error {
	for _, u := range m.users {
		if u.Email == user.Email {
			return errs.Duplicatef("user with email %s", user.Email)
		}
	}
	m.users[user.ID] = user
	return nil
}

func (m *mockUserRepository) GetByID(ctx context.Context, id string) (*secondary.UserRecord, error) {
	if u, ok := m.users[id]; ok {
		return u, nil
	}
	return nil, errs.NotFoundf("user %s", id)
}

func (m *mockUserRepository) GetByEmail(ctx context.Context, email string) (*secondary.UserRecord, error) {
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, errs.NotFoundf("user with email %s", email)
}

func (m *mockUserRepository) List(ctx context.Context, role string) ([]*secondary.UserRecord, error) {
	var result []*secondary.UserRecord
	for _, u := range m.users {
		if role != "" && u.Role != role {
			continue
		}
		result = append(result, u)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (m *mockUserRepository) Deactivate(ctx context.Context, id string) error {
	u, ok := m.users[id]
	if !ok {
		return errs.NotFoundf("user %s", id)
	}
	u.IsActive = false
	return nil
}

func (m *mockUserRepository) GetNextID(ctx context.Context) (string, error) {
	return fmt.Sprintf("USER-%03d", len(m.users)+1), nil
}

// mockActivityLogRepository implements secondary.ActivityLogRepository
// for testing. Entries are kept in insertion order; List returns them
// newest first the way the SQLite adapter does.
type mockActivityLogRepository struct {
	entries []*secondary.ActivityLogRecord
}

func newMockActivityLogRepository() *mockActivityLogRepository {
	return &mockActivityLogRepository{}
}

func (m *mockActivityLogRepository) Create(ctx context.Context, entry *secondary.ActivityLogRecord) error {
	m.entries = append(m.entries, entry)
	return nil
}

func (m *mockActivityLogRepository) List(ctx context.Context, filters secondary.ActivityLogFilters) ([]*secondary.ActivityLogRecord, error) {
	var result []*secondary.ActivityLogRecord
	for i := len(m.entries) - 1; i >= 0; i-- {
		e := m.entries[i]
		if filters.ActorID != "" && e.ActorID != filters.ActorID {
			continue
		}
		if filters.EntityType != "" && e.EntityType != filters.EntityType {
			continue
		}
		result = append(result, e)
		if filters.Limit > 0 && len(result) == filters.Limit {
			break
		}
	}
	return result, nil
}

func (m *mockActivityLogRepository) GetNextID(ctx context.Context) (string, error) {
	return fmt.Sprintf("LOG-%03d", len(m.entries)+1), nil
}

// ============================================================================
// Shared fixtures
// ============================================================================

const testTranslation = "How are you? How is your work today?"

func seedMockSentence(repo *mockSentenceRepository, id string) *secondary.SentenceRecord {
	s := &secondary.SentenceRecord{
		ID:                 id,
		SourceText:         "Kumusta ka? Kumusta ang trabaho mo ngayon?",
		MachineTranslation: testTranslation,
		SourceLanguage:     "fil",
		TargetLanguage:     "en",
		IsActive:           true,
	}
	repo.sentences[id] = s
	return s
}

func seedMockAnnotation(repo *mockAnnotationRepository, id, sentenceID, annotatorID, status string) *secondary.AnnotationRecord {
	a := &secondary.AnnotationRecord{
		ID:          id,
		SentenceID:  sentenceID,
		AnnotatorID: annotatorID,
		Status:      status,
	}
	repo.annotations[id] = a
	return a
}

func scoreOf(n int) *int { return &n }

func strOf(s string) *string { return &s }
