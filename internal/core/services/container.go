package services

import (
	portsrepo "github.com/caixazul/treasury_backend/internal/core/ports/repositories"
	portssvc "github.com/caixazul/treasury_backend/internal/core/ports/services"
	"github.com/caixazul/treasury_backend/internal/platform/config"
)

// NewServiceContainer wires every service against the shared repositories and
// transaction manager.
func NewServiceContainer(cfg *config.AppConfig, repos portsrepo.RepositoryProvider, txManager portsrepo.TransactionManager) *portssvc.ServiceContainer {
	notificationSvc := NewNotificationService(repos.NotificationRepo, repos.PayableRepo, repos.ReceivableRepo)
	return &portssvc.ServiceContainer{
		Auth:         NewAuthService(repos.UserRepo, cfg),
		BankAccount:  NewBankAccountService(repos.BankAccountRepo),
		Movement:     NewMovementService(txManager, repos.MovementRepo, repos.BankAccountRepo, notificationSvc),
		Treasury:     NewTreasuryService(repos.MovementRepo, repos.BankAccountRepo),
		Payable:      NewPayableService(txManager, repos.PayableRepo, repos.SettlementRepo),
		Receivable:   NewReceivableService(txManager, repos.ReceivableRepo, repos.SettlementRepo),
		Notification: notificationSvc,
	}
}
