package repository

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"upcyclehub/internal/domain/entity"
	"upcyclehub/internal/domain/repository"
	"upcyclehub/pkg/errors"
)

// MemoryStore is an in-memory implementation of every repository interface.
// It backs local development when no DATABASE_URL is configured, and the
// test suites. State is lost on process restart.
type MemoryStore struct {
	mu sync.RWMutex

	users         map[int64]*entity.User
	products      map[int64]*entity.Product
	productImages map[int64][]*entity.ProductImage
	conversations map[int64]*entity.Conversation
	messages      map[int64][]*entity.Message

	nextUserID         int64
	nextProductID      int64
	nextImageID        int64
	nextConversationID int64
	nextMessageID      int64
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users:              make(map[int64]*entity.User),
		products:           make(map[int64]*entity.Product),
		productImages:      make(map[int64][]*entity.ProductImage),
		conversations:      make(map[int64]*entity.Conversation),
		messages:           make(map[int64][]*entity.Message),
		nextUserID:         1,
		nextProductID:      1,
		nextImageID:        1,
		nextConversationID: 1,
		nextMessageID:      1,
	}
}

// Interface views, so main and tests can wire a MemoryStore exactly like
// the Postgres repositories.

func (s *MemoryStore) Users() repository.UserRepository                 { return (*memoryUserRepository)(s) }
func (s *MemoryStore) Products() repository.ProductRepository           { return (*memoryProductRepository)(s) }
func (s *MemoryStore) Conversations() repository.ConversationRepository { return (*memoryConversationRepository)(s) }
func (s *MemoryStore) Messages() repository.MessageRepository           { return (*memoryMessageRepository)(s) }

type memoryUserRepository MemoryStore

func (r *memoryUserRepository) Create(ctx context.Context, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	user.ID = r.nextUserID
	r.nextUserID++
	if user.UUID == "" {
		user.UUID = uuid.New().String()
	}
	user.CreatedAt = time.Now()

	clone := *user
	r.users[user.ID] = &clone
	return nil
}

func (r *memoryUserRepository) GetByID(ctx context.Context, id int64) (*entity.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.users[id]
	if !ok {
		return nil, errors.NotFound("User", nil)
	}
	clone := *user
	return &clone, nil
}

func (r *memoryUserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, user := range r.users {
		if user.Email == email {
			clone := *user
			return &clone, nil
		}
	}
	return nil, errors.NotFound("User", nil)
}

func (r *memoryUserRepository) GetByUsername(ctx context.Context, username string) (*entity.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, user := range r.users {
		if user.Username == username {
			clone := *user
			return &clone, nil
		}
	}
	return nil, errors.NotFound("User", nil)
}

type memoryProductRepository MemoryStore

func (r *memoryProductRepository) Create(ctx context.Context, product *entity.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	product.ID = r.nextProductID
	r.nextProductID++
	if product.UUID == "" {
		product.UUID = uuid.New().String()
	}
	if product.Status == "" {
		product.Status = "active"
	}
	product.Views = 0
	product.CreatedAt = time.Now()

	clone := *product
	r.products[product.ID] = &clone
	return nil
}

func (r *memoryProductRepository) GetByID(ctx context.Context, id int64) (*entity.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	product, ok := r.products[id]
	if !ok {
		return nil, errors.NotFound("Product", nil)
	}
	clone := *product
	return &clone, nil
}

func (r *memoryProductRepository) List(ctx context.Context, category string) ([]*entity.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var products []*entity.Product
	for _, product := range r.products {
		if category != "" && product.Category != category {
			continue
		}
		clone := *product
		products = append(products, &clone)
	}
	return products, nil
}

func (r *memoryProductRepository) ListBySeller(ctx context.Context, sellerID int64) ([]*entity.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var products []*entity.Product
	for _, product := range r.products {
		if product.SellerID == sellerID {
			clone := *product
			products = append(products, &clone)
		}
	}
	return products, nil
}

func (r *memoryProductRepository) Update(ctx context.Context, product *entity.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.products[product.ID]
	if !ok {
		return errors.NotFound("Product", nil)
	}
	product.UUID = existing.UUID
	product.SellerID = existing.SellerID
	product.Views = existing.Views
	product.CreatedAt = existing.CreatedAt

	clone := *product
	r.products[product.ID] = &clone
	return nil
}

func (r *memoryProductRepository) Delete(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.products[id]; !ok {
		return errors.NotFound("Product", nil)
	}
	delete(r.products, id)
	delete(r.productImages, id)
	return nil
}

func (r *memoryProductRepository) IncrementViews(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if product, ok := r.products[id]; ok {
		product.Views++
	}
	return nil
}

func (r *memoryProductRepository) CreateImage(ctx context.Context, image *entity.ProductImage) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	image.ID = r.nextImageID
	r.nextImageID++
	image.CreatedAt = time.Now()

	clone := *image
	r.productImages[image.ProductID] = append(r.productImages[image.ProductID], &clone)
	return nil
}

func (r *memoryProductRepository) ListImages(ctx context.Context, productID int64) ([]*entity.ProductImage, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var images []*entity.ProductImage
	for _, image := range r.productImages[productID] {
		clone := *image
		images = append(images, &clone)
	}
	return images, nil
}

type memoryConversationRepository MemoryStore

func (r *memoryConversationRepository) Create(ctx context.Context, conversation *entity.Conversation) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	conversation.ID = r.nextConversationID
	r.nextConversationID++
	conversation.CreatedAt = time.Now()

	clone := *conversation
	r.conversations[conversation.ID] = &clone
	return nil
}

func (r *memoryConversationRepository) GetByID(ctx context.Context, id int64) (*entity.Conversation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	conversation, ok := r.conversations[id]
	if !ok {
		return nil, errors.NotFound("Conversation", nil)
	}
	clone := *conversation
	return &clone, nil
}

func (r *memoryConversationRepository) GetByParticipants(ctx context.Context, productID, buyerID, sellerID int64) (*entity.Conversation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, conversation := range r.conversations {
		if conversation.ProductID == productID && conversation.BuyerID == buyerID && conversation.SellerID == sellerID {
			clone := *conversation
			return &clone, nil
		}
	}
	return nil, errors.NotFound("Conversation", nil)
}

func (r *memoryConversationRepository) ListByUserID(ctx context.Context, userID int64) ([]*entity.Conversation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var conversations []*entity.Conversation
	for _, conversation := range r.conversations {
		if conversation.BuyerID == userID || conversation.SellerID == userID {
			clone := *conversation
			conversations = append(conversations, &clone)
		}
	}
	return conversations, nil
}

func (r *memoryConversationRepository) UpdateLastMessage(ctx context.Context, id int64, content string, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	conversation, ok := r.conversations[id]
	if !ok {
		return errors.NotFound("Conversation", nil)
	}
	conversation.LastMessage = content
	conversation.LastMessageTime = &at
	return nil
}

type memoryMessageRepository MemoryStore

func (r *memoryMessageRepository) Create(ctx context.Context, message *entity.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	message.ID = r.nextMessageID
	r.nextMessageID++
	message.CreatedAt = time.Now()

	clone := *message
	r.messages[message.ConversationID] = append(r.messages[message.ConversationID], &clone)
	return nil
}

func (r *memoryMessageRepository) ListByConversation(ctx context.Context, conversationID int64) ([]*entity.Message, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var messages []*entity.Message
	for _, message := range r.messages[conversationID] {
		clone := *message
		messages = append(messages, &clone)
	}
	return messages, nil
}
