package services

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/you/blogsvc/domain"
	"go.uber.org/zap"
)

// notDeleted hides soft-deleted accounts from every normal query
var notDeleted = domain.Ne(domain.FieldStatus, domain.StatusDeleted)

// UserServiceImpl implements domain.UserService on top of an account store
type UserServiceImpl struct {
	store       domain.AccountStore
	passwordSvc domain.PasswordService
	audit       domain.AuditLogger
	logger      *zap.Logger
	now         func() time.Time
	newID       func() string
}

// NewUserService creates a new user service. audit may be nil.
func NewUserService(store domain.AccountStore, passwordSvc domain.PasswordService, audit domain.AuditLogger, logger *zap.Logger) *UserServiceImpl {
	return &UserServiceImpl{
		store:       store,
		passwordSvc: passwordSvc,
		audit:       audit,
		logger:      logger.Named("users"),
		now:         time.Now,
		newID:       uuid.NewString,
	}
}

// storageFailure logs err and returns the generic failure
func storageFailure[T any](logger *zap.Logger, op string, err error) domain.DataResult[T] {
	logger.Error("store failure", zap.String("op", op), zap.Error(err))
	return domain.FailureData[T](domain.MsgGeneric)
}

func (s *UserServiceImpl) findOne(ctx context.Context, op string, cond domain.Condition) domain.DataResult[*domain.Account] {
	account, err := s.store.FindOne(ctx, domain.Where(cond, notDeleted))
	if err != nil {
		return storageFailure[*domain.Account](s.logger, op, err)
	}
	if account == nil {
		return domain.FailureData[*domain.Account](domain.MsgUserNotExists)
	}
	return domain.SuccessData(account)
}

// GetByUsername implements domain.UserService
func (s *UserServiceImpl) GetByUsername(ctx context.Context, username string) domain.DataResult[*domain.Account] {
	return s.findOne(ctx, "get_by_username", domain.Eq(domain.FieldUsername, username))
}

// GetByEmail implements domain.UserService
func (s *UserServiceImpl) GetByEmail(ctx context.Context, email string) domain.DataResult[*domain.Account] {
	return s.findOne(ctx, "get_by_email", domain.Eq(domain.FieldEmail, email))
}

// GetByID implements domain.UserService
func (s *UserServiceImpl) GetByID(ctx context.Context, id string) domain.DataResult[*domain.Account] {
	return s.findOne(ctx, "get_by_id", domain.Eq(domain.FieldID, id))
}

// List implements domain.UserService
func (s *UserServiceImpl) List(ctx context.Context) domain.DataResult[[]domain.Account] {
	accounts, err := s.store.Find(ctx, domain.Where(notDeleted))
	if err != nil {
		return storageFailure[[]domain.Account](s.logger, "list", err)
	}
	if accounts == nil {
		accounts = []domain.Account{}
	}
	return domain.SuccessData(accounts)
}

// exists loads the account into *dst so later rules can compare against it
func (s *UserServiceImpl) exists(id string, dst **domain.Account) domain.Rule {
	return func(ctx context.Context) domain.Result {
		res := s.GetByID(ctx, id)
		if res.Failed() {
			return res.Result
		}
		*dst = res.Data
		return domain.Success("")
	}
}

// unique fails with message when another non-deleted account has field == value.
// exceptID excludes the account being updated.
func (s *UserServiceImpl) unique(field, value, exceptID, message string) domain.Rule {
	return func(ctx context.Context) domain.Result {
		filter := domain.Where(domain.Eq(field, value), notDeleted)
		if exceptID != "" {
			filter = append(filter, domain.Ne(domain.FieldID, exceptID))
		}
		found, err := s.store.FindOne(ctx, filter)
		if err != nil {
			s.logger.Error("uniqueness check failed", zap.String("field", field), zap.Error(err))
			return domain.Failure(domain.MsgGeneric)
		}
		if found != nil {
			return domain.Failure(message)
		}
		return domain.Success("")
	}
}

func normalizeRole(r domain.Role) domain.Role {
	return domain.Role(strings.ToUpper(string(r)))
}

func normalizeStatus(st domain.AccountStatus) domain.AccountStatus {
	return domain.AccountStatus(strings.ToUpper(string(st)))
}

// Add implements domain.UserService
func (s *UserServiceImpl) Add(ctx context.Context, draft domain.AccountDraft) domain.DataResult[*domain.Account] {
	status := normalizeStatus(draft.Status)
	if status == "" {
		status = domain.StatusPassive
	}
	role := normalizeRole(draft.Role)
	if role == "" {
		role = domain.RoleUser
	}

	if res := domain.RunRules(ctx,
		s.unique(domain.FieldUsername, draft.Username, "", domain.MsgUsernameTaken),
		s.unique(domain.FieldEmail, draft.Email, "", domain.MsgEmailTaken),
		domain.Check(len(draft.Password) <= domain.MaxPasswordBytes, domain.MsgPasswordTooLong),
		domain.Check(status.Valid(), domain.MsgInvalidStatus),
		domain.Check(role.Valid(), domain.MsgInvalidRole),
	); res.Failed() {
		return domain.FailWith[*domain.Account](res)
	}

	hash, err := s.passwordSvc.Hash(draft.Password)
	if err != nil {
		return storageFailure[*domain.Account](s.logger, "hash_password", err)
	}

	account := &domain.Account{
		ID:           s.newID(),
		Username:     draft.Username,
		Email:        draft.Email,
		PasswordHash: hash,
		Status:       status,
		Role:         role,
		CreatedAt:    s.now().UTC(),
	}
	created, err := s.store.Create(ctx, account)
	if err != nil {
		return storageFailure[*domain.Account](s.logger, "create", err)
	}

	s.logger.Info("account created", zap.String("user_id", created.ID), zap.String("username", created.Username))
	return domain.SuccessData(created)
}

// transition patches a non-deleted account, reporting a vanished account as missing
func (s *UserServiceImpl) transition(ctx context.Context, op, id string, patch domain.Patch) domain.DataResult[*domain.Account] {
	updated, err := s.store.FindOneAndUpdate(ctx, domain.Where(domain.Eq(domain.FieldID, id), notDeleted), patch)
	if err != nil {
		return storageFailure[*domain.Account](s.logger, op, err)
	}
	if updated == nil {
		return domain.FailureData[*domain.Account](domain.MsgUserNotExists)
	}
	return domain.SuccessData(updated)
}

func (s *UserServiceImpl) setStatus(ctx context.Context, op, id string, status domain.AccountStatus, message string, event domain.AuditEventType) domain.DataResult[*domain.Account] {
	var current *domain.Account
	if res := domain.RunRules(ctx, s.exists(id, &current)); res.Failed() {
		return domain.FailWith[*domain.Account](res)
	}

	res := s.transition(ctx, op, id, domain.Patch{domain.FieldStatus: status})
	if res.Failed() {
		return res
	}
	recordEvent(ctx, s.audit, s.logger, domain.NewAuditEvent(event).
		WithAccount(res.Data).
		WithMetadata("previous_status", string(current.Status)))
	return domain.SuccessDataMsg(res.Data, message)
}

// Activate implements domain.UserService
func (s *UserServiceImpl) Activate(ctx context.Context, id string) domain.DataResult[*domain.Account] {
	return s.setStatus(ctx, "activate", id, domain.StatusActive, domain.MsgAccountActivated, domain.AccountActivatedEvent)
}

// Suspend implements domain.UserService
func (s *UserServiceImpl) Suspend(ctx context.Context, id string) domain.DataResult[*domain.Account] {
	return s.setStatus(ctx, "suspend", id, domain.StatusSuspended, domain.MsgAccountSuspended, domain.AccountSuspendedEvent)
}

// Delete implements domain.UserService. The account is kept as DELETED.
func (s *UserServiceImpl) Delete(ctx context.Context, id string) domain.DataResult[*domain.Account] {
	return s.setStatus(ctx, "delete", id, domain.StatusDeleted, domain.MsgAccountDeleted, domain.AccountDeletedEvent)
}

// Update implements domain.UserService
func (s *UserServiceImpl) Update(ctx context.Context, id string, patch domain.AccountPatch) domain.DataResult[*domain.Account] {
	var current *domain.Account
	var status *domain.AccountStatus
	var role *domain.Role
	if patch.Status != nil {
		st := normalizeStatus(*patch.Status)
		status = &st
	}
	if patch.Role != nil {
		r := normalizeRole(*patch.Role)
		role = &r
	}

	if res := domain.RunRules(ctx,
		s.exists(id, &current),
		func(ctx context.Context) domain.Result {
			if patch.Username == nil || *patch.Username == current.Username {
				return domain.Success("")
			}
			return s.unique(domain.FieldUsername, *patch.Username, id, domain.MsgUsernameTaken)(ctx)
		},
		func(ctx context.Context) domain.Result {
			return domain.Check(patch.Email == nil || *patch.Email == current.Email, domain.MsgEmailImmutable)(ctx)
		},
		domain.Check(patch.Password == nil || len(*patch.Password) <= domain.MaxPasswordBytes, domain.MsgPasswordTooLong),
		domain.Check(status == nil || status.Valid(), domain.MsgInvalidStatus),
		domain.Check(role == nil || role.Valid(), domain.MsgInvalidRole),
	); res.Failed() {
		return domain.FailWith[*domain.Account](res)
	}

	changes := domain.Patch{}
	if patch.Username != nil {
		changes[domain.FieldUsername] = *patch.Username
	}
	if status != nil {
		changes[domain.FieldStatus] = *status
	}
	if role != nil {
		changes[domain.FieldRole] = *role
	}
	if patch.Password != nil && *patch.Password != current.PasswordHash {
		hash, err := s.passwordSvc.Hash(*patch.Password)
		if err != nil {
			return storageFailure[*domain.Account](s.logger, "hash_password", err)
		}
		changes[domain.FieldPasswordHash] = hash
	}
	if len(changes) == 0 {
		return domain.SuccessDataMsg(current, domain.MsgAccountUpdated)
	}

	res := s.transition(ctx, "update", id, changes)
	if res.Failed() {
		return res
	}
	return domain.SuccessDataMsg(res.Data, domain.MsgAccountUpdated)
}

// Purge implements domain.UserService. Soft-deleted accounts can be purged too.
func (s *UserServiceImpl) Purge(ctx context.Context, id string) domain.DataResult[*domain.Account] {
	removed, err := s.store.FindOneAndDelete(ctx, domain.Where(domain.Eq(domain.FieldID, id)))
	if err != nil {
		return storageFailure[*domain.Account](s.logger, "purge", err)
	}
	if removed == nil {
		return domain.FailureData[*domain.Account](domain.MsgUserNotExists)
	}
	recordEvent(ctx, s.audit, s.logger, domain.NewAuditEvent(domain.AccountPurgedEvent).WithAccount(removed))
	return domain.SuccessDataMsg(removed, domain.MsgAccountPurged)
}
