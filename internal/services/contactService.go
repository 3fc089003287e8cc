package services

import (
	"context"
	"strings"
	"time"

	"github.com/arzan03/StoreFront/internal/apperr"
	"github.com/arzan03/StoreFront/internal/logger"
	"github.com/arzan03/StoreFront/internal/models"
	"github.com/arzan03/StoreFront/internal/realtime"
	"github.com/arzan03/StoreFront/internal/store"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// NewContactNotice is the text pushed to dashboards for each new message.
const NewContactNotice = "New message from a user"

// ContactNotification is the payload of a new-contact event.
type ContactNotification struct {
	Message   string `json:"message"`
	UserID    string `json:"userId"`
	ContactID string `json:"contactId"`
}

type ContactService struct {
	contacts  store.ContactStore
	publisher realtime.Publisher
	log       *logger.Logger
}

func NewContactService(contacts store.ContactStore, publisher realtime.Publisher, log *logger.Logger) *ContactService {
	if publisher == nil {
		publisher = realtime.Discard{}
	}
	return &ContactService{contacts: contacts, publisher: publisher, log: log.WithComponent("contacts")}
}

// Create stores the message and notifies connected dashboards.
func (s *ContactService) Create(ctx context.Context, caller models.Caller, message string) (*models.Contact, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return nil, apperr.InvalidArgument("message is required")
	}

	contact := &models.Contact{
		ID:        primitive.NewObjectID(),
		UserID:    caller.UserID,
		Message:   message,
		CreatedAt: time.Now(),
	}
	if err := s.contacts.Create(ctx, contact); err != nil {
		return nil, apperr.Internal("failed to save message", err)
	}

	s.publisher.Publish(realtime.EventNewContact, ContactNotification{
		Message:   NewContactNotice,
		UserID:    caller.UserID.Hex(),
		ContactID: contact.ID.Hex(),
	})
	s.log.Info("contact message received", "contact_id", contact.ID.Hex(), "user_id", caller.UserID.Hex())
	return contact, nil
}

func (s *ContactService) List(ctx context.Context) ([]models.Contact, error) {
	contacts, err := s.contacts.List(ctx)
	if err != nil {
		return nil, apperr.Internal("failed to list messages", err)
	}
	return contacts, nil
}

func (s *ContactService) Delete(ctx context.Context, id primitive.ObjectID) error {
	if err := s.contacts.Delete(ctx, id); err != nil {
		return storeErr(err, "message not found")
	}
	return nil
}

func (s *ContactService) DeleteAll(ctx context.Context) (int64, error) {
	n, err := s.contacts.DeleteAll(ctx)
	if err != nil {
		return 0, apperr.Internal("failed to delete messages", err)
	}
	s.log.Warn("all contact messages deleted", "count", n)
	return n, nil
}
