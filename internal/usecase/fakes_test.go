package usecase

import (
	"context"
	"errors"
	"sort"
	"time"

	"campus-market/internal/entity"
	"campus-market/pkg/queue"

	"gorm.io/gorm"
)

var (
	errNotFound   = gorm.ErrRecordNotFound
	errSendFailed = errors.New("email provider unavailable")
)

// In-memory repository fakes mirroring the SQL predicates of the persistent
// implementations.

type fakeTransactionRepo struct {
	transactions []*entity.Transaction
	scanErr      error
}

func (f *fakeTransactionRepo) Create(t *entity.Transaction) (*entity.Transaction, error) {
	f.transactions = append(f.transactions, t)
	return t, nil
}

func (f *fakeTransactionRepo) GetByID(id string) (*entity.Transaction, error) {
	for _, t := range f.transactions {
		if t.ID == id {
			return t, nil
		}
	}
	return nil, errNotFound
}

func (f *fakeTransactionRepo) UpdateStatus(id string, status entity.TransactionStatus) error {
	for _, t := range f.transactions {
		if t.ID == id {
			t.Status = status
		}
	}
	return nil
}

func (f *fakeTransactionRepo) ListForUser(userID string, limit, offset int) ([]*entity.Transaction, error) {
	var out []*entity.Transaction
	for _, t := range f.transactions {
		if t.BuyerID == userID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (f *fakeTransactionRepo) GetCompletedBefore(cutoff time.Time, limit, offset int) ([]*entity.Transaction, error) {
	if f.scanErr != nil {
		return nil, f.scanErr
	}

	var eligible []*entity.Transaction
	for _, t := range f.transactions {
		if t.Status == entity.TransactionStatusCompleted && !t.CreatedAt.After(cutoff) {
			eligible = append(eligible, t)
		}
	}
	sort.Slice(eligible, func(i, j int) bool { return eligible[i].CreatedAt.Before(eligible[j].CreatedAt) })

	return paginate(eligible, limit, offset), nil
}

type fakeBalanceRepo struct {
	balances   map[string]*entity.Balance
	releaseErr map[string]error
}

func newFakeBalanceRepo() *fakeBalanceRepo {
	return &fakeBalanceRepo{
		balances:   make(map[string]*entity.Balance),
		releaseErr: make(map[string]error),
	}
}

func (f *fakeBalanceRepo) GetOrCreate(userID string) (*entity.Balance, error) {
	if b, ok := f.balances[userID]; ok {
		return b, nil
	}
	b := &entity.Balance{UserID: userID}
	f.balances[userID] = b
	return b, nil
}

func (f *fakeBalanceRepo) CreditPending(userID string, amount int64) error {
	b, _ := f.GetOrCreate(userID)
	b.PendingBalance += amount
	b.TotalSales++
	return nil
}

func (f *fakeBalanceRepo) TryRelease(userID string, amount int64) (bool, error) {
	if err := f.releaseErr[userID]; err != nil {
		return false, err
	}
	b, ok := f.balances[userID]
	if !ok || b.PendingBalance < amount {
		return false, nil
	}
	b.PendingBalance -= amount
	b.AvailableBalance += amount
	return true, nil
}

func (f *fakeBalanceRepo) TryWithdraw(userID string, amount int64) (bool, error) {
	b, ok := f.balances[userID]
	if !ok || b.AvailableBalance < amount {
		return false, nil
	}
	b.AvailableBalance -= amount
	return true, nil
}

func (f *fakeBalanceRepo) IncrementPurchases(userID string) error {
	b, _ := f.GetOrCreate(userID)
	b.TotalPurchases++
	return nil
}

type fakeMessageRepo struct {
	messages []*entity.Message
	scanErr  error
}

func (f *fakeMessageRepo) GetOrCreateConversation(itemID, buyerID, sellerID string) (*entity.Conversation, error) {
	return &entity.Conversation{ID: "conv-1", ItemID: itemID, BuyerID: buyerID, SellerID: sellerID}, nil
}

func (f *fakeMessageRepo) GetConversation(id string) (*entity.Conversation, error) {
	return nil, errNotFound
}

func (f *fakeMessageRepo) GetConversationsForUser(userID string, limit, offset int) ([]*entity.Conversation, error) {
	return nil, nil
}

func (f *fakeMessageRepo) CreateMessage(m *entity.Message) (*entity.Message, error) {
	f.messages = append(f.messages, m)
	return m, nil
}

func (f *fakeMessageRepo) GetMessages(conversationID string, limit, offset int) ([]*entity.Message, error) {
	return nil, nil
}

func (f *fakeMessageRepo) MarkConversationRead(conversationID, receiverID string) (int64, error) {
	return 0, nil
}

func (f *fakeMessageRepo) GetUnnotifiedBefore(cutoff time.Time, conversationID string, limit, offset int) ([]*entity.Message, error) {
	if f.scanErr != nil {
		return nil, f.scanErr
	}

	var eligible []*entity.Message
	for _, m := range f.messages {
		if m.IsRead || m.EmailNotificationSent || m.CreatedAt.After(cutoff) {
			continue
		}
		if conversationID != "" && m.ConversationID != conversationID {
			continue
		}
		eligible = append(eligible, m)
	}
	sort.Slice(eligible, func(i, j int) bool { return eligible[i].CreatedAt.Before(eligible[j].CreatedAt) })

	return paginate(eligible, limit, offset), nil
}

func (f *fakeMessageRepo) MarkEmailNotified(messageID string) error {
	for _, m := range f.messages {
		if m.ID == messageID {
			m.EmailNotificationSent = true
		}
	}
	return nil
}

type fakeUserRepo struct {
	users map[string]*entity.User
}

func (f *fakeUserRepo) Create(u *entity.User) (*entity.User, error) { return u, nil }

func (f *fakeUserRepo) GetByID(id string) (*entity.User, error) {
	if u, ok := f.users[id]; ok {
		return u, nil
	}
	return nil, errNotFound
}

func (f *fakeUserRepo) GetByEmail(email string) (*entity.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, errNotFound
}

func (f *fakeUserRepo) Update(u *entity.User) error { return nil }

type sentEmail struct {
	To      string
	Subject string
}

type fakeMailer struct {
	sent    []sentEmail
	failFor map[string]bool
}

func (f *fakeMailer) Send(ctx context.Context, to, subject, htmlBody string) error {
	if f.failFor[to] {
		return errSendFailed
	}
	f.sent = append(f.sent, sentEmail{To: to, Subject: subject})
	return nil
}

type fakeNotificationUC struct {
	notifications []*entity.Notification
}

func (f *fakeNotificationUC) SendNotification(userID, title, message, notificationType string, data map[string]interface{}) (*entity.Notification, error) {
	n := &entity.Notification{UserID: userID, Title: title, Message: message, Type: notificationType, Data: data}
	f.notifications = append(f.notifications, n)
	return n, nil
}

func (f *fakeNotificationUC) GetNotifications(userID string, limit, offset int) ([]*entity.Notification, int64, error) {
	return nil, 0, nil
}

func (f *fakeNotificationUC) MarkRead(id, userID string) error        { return nil }
func (f *fakeNotificationUC) MarkAllRead(userID string) (int64, error) { return 0, nil }
func (f *fakeNotificationUC) CountUnread(userID string) (int64, error) { return 0, nil }
func (f *fakeNotificationUC) HandleNotificationTask(task *queue.Task) error { return nil }

func paginate[T any](items []T, limit, offset int) []T {
	if offset >= len(items) {
		return nil
	}
	end := len(items)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	return items[offset:end]
}
