package packages

import (
	"fmt"
	"sync"
	"time"

	"salonbook/models"
	"salonbook/services/events"
	"salonbook/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// TemplateSource resolves package templates.
type TemplateSource interface {
	Get(id string) (models.PackageTemplate, error)
}

// Ledger tracks purchased client packages and their credit balances.
//
// Balances are kept within [0, template.SessionCount]. UseCredit at zero and
// ReturnCredit at the cap leave the balance untouched and report
// changed=false instead of failing, so duplicate calls are harmless.
type Ledger struct {
	mu        sync.RWMutex
	packages  []models.ClientPackage
	templates TemplateSource
	pub       events.Publisher
	clock     utils.Clock
	logger    *zap.Logger
}

func NewLedger(templates TemplateSource, pub events.Publisher, clock utils.Clock, logger *zap.Logger) *Ledger {
	if pub == nil {
		pub = events.Nop{}
	}
	if clock == nil {
		clock = utils.SystemClock{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Ledger{templates: templates, pub: pub, clock: clock, logger: logger}
}

func (l *Ledger) Load(pkgs []models.ClientPackage) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.packages = append([]models.ClientPackage(nil), pkgs...)
}

// Buy sells one instance of the template to the client, starting today with
// a full balance.
func (l *Ledger) Buy(clientID, templateID string) (models.ClientPackage, error) {
	if clientID == "" {
		return models.ClientPackage{}, utils.NewValidationError("clientId", "is required")
	}
	tpl, err := l.templates.Get(templateID)
	if err != nil {
		return models.ClientPackage{}, err
	}
	today := models.DayOf(l.clock.Now())
	pkg := models.ClientPackage{
		ID:                uuid.New().String(),
		ClientID:          clientID,
		PackageTemplateID: tpl.ID,
		PurchaseDate:      today,
		ExpiryDate:        today.AddDate(0, 0, tpl.ValidityDays),
		CreditsRemaining:  tpl.SessionCount,
	}

	l.mu.Lock()
	l.packages = append(l.packages, pkg)
	l.mu.Unlock()

	l.pub.Publish(events.Upserted(models.KindClientPackage, pkg.ID, pkg))
	l.logger.Info("package purchased",
		zap.String("clientID", clientID),
		zap.String("templateID", tpl.ID),
		zap.Int("credits", pkg.CreditsRemaining))
	return pkg, nil
}

// UseCredit takes one credit. At zero it is a no-op and changed is false.
func (l *Ledger) UseCredit(id string) (pkg models.ClientPackage, changed bool, err error) {
	return l.adjust(id, -1)
}

// ReturnCredit gives one credit back. At the template's session count it is
// a no-op and changed is false.
func (l *Ledger) ReturnCredit(id string) (pkg models.ClientPackage, changed bool, err error) {
	return l.adjust(id, +1)
}

func (l *Ledger) adjust(id string, delta int) (models.ClientPackage, bool, error) {
	l.mu.Lock()
	idx := l.indexLocked(id)
	if idx < 0 {
		l.mu.Unlock()
		return models.ClientPackage{}, false, utils.NewNotFoundError("client package", id)
	}
	pkg := l.packages[idx]

	limit := 0
	if delta > 0 {
		tpl, err := l.templates.Get(pkg.PackageTemplateID)
		if err != nil {
			l.mu.Unlock()
			return pkg, false, err
		}
		limit = tpl.SessionCount
	}

	next := pkg.CreditsRemaining + delta
	if (delta < 0 && next < 0) || (delta > 0 && next > limit) {
		l.mu.Unlock()
		l.logger.Debug("credit adjustment skipped at boundary",
			zap.String("clientPackageID", id),
			zap.Int("credits", pkg.CreditsRemaining),
			zap.Int("delta", delta))
		return pkg, false, nil
	}
	pkg.CreditsRemaining = next
	l.packages[idx] = pkg
	l.mu.Unlock()

	l.pub.Publish(events.Upserted(models.KindClientPackage, pkg.ID, pkg))
	return pkg, true, nil
}

// ResizeTemplate runs update, which changes templateID's session count to
// sessionCount, only if no purchased package holds more credits than that.
// The ledger stays locked throughout so no refund can slip in between.
func (l *Ledger) ResizeTemplate(templateID string, sessionCount int, update func() error) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, p := range l.packages {
		if p.PackageTemplateID == templateID && p.CreditsRemaining > sessionCount {
			return utils.NewValidationError("sessionCount",
				fmt.Sprintf("package %s still holds %d credits", p.ID, p.CreditsRemaining))
		}
	}
	return update()
}

func (l *Ledger) indexLocked(id string) int {
	for i, p := range l.packages {
		if p.ID == id {
			return i
		}
	}
	return -1
}

func (l *Ledger) Get(id string) (models.ClientPackage, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if idx := l.indexLocked(id); idx >= 0 {
		return l.packages[idx], nil
	}
	return models.ClientPackage{}, utils.NewNotFoundError("client package", id)
}

func (l *Ledger) List() []models.ClientPackage {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return append([]models.ClientPackage(nil), l.packages...)
}

// ListForClient returns every package the client bought, spent or not.
func (l *Ledger) ListForClient(clientID string) []models.ClientPackage {
	var out []models.ClientPackage
	for _, p := range l.List() {
		if p.ClientID == clientID {
			out = append(out, p)
		}
	}
	return out
}

// GetActiveForClient returns the client's packages that still hold credits
// and have not expired on asOf, each with its template. Packages whose
// template no longer exists are skipped.
func (l *Ledger) GetActiveForClient(clientID string, asOf time.Time) []models.ActivePackage {
	var out []models.ActivePackage
	for _, p := range l.ListForClient(clientID) {
		if !p.ActiveOn(asOf) {
			continue
		}
		tpl, err := l.templates.Get(p.PackageTemplateID)
		if err != nil {
			continue
		}
		out = append(out, models.ActivePackage{Package: p, Template: tpl})
	}
	return out
}

// DeleteByTemplateID hard-deletes every instance of the template, discarding
// its usage history.
func (l *Ledger) DeleteByTemplateID(templateID string) []models.ClientPackage {
	return l.deleteWhere(func(p models.ClientPackage) bool { return p.PackageTemplateID == templateID })
}

// DeleteByClientID removes every package the client owns.
func (l *Ledger) DeleteByClientID(clientID string) []models.ClientPackage {
	return l.deleteWhere(func(p models.ClientPackage) bool { return p.ClientID == clientID })
}

func (l *Ledger) deleteWhere(match func(models.ClientPackage) bool) []models.ClientPackage {
	l.mu.Lock()
	var removed []models.ClientPackage
	kept := l.packages[:0]
	for _, p := range l.packages {
		if match(p) {
			removed = append(removed, p)
			continue
		}
		kept = append(kept, p)
	}
	l.packages = kept
	l.mu.Unlock()

	for _, p := range removed {
		l.pub.Publish(events.Deleted(models.KindClientPackage, p.ID, p))
	}
	return removed
}
