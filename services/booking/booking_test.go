package booking

import (
	"context"
	"sync"
	"testing"
	"time"

	"salonbook/models"
	"salonbook/services/events"
	"salonbook/utils"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const monday = "2026-10-19"

type fixture struct {
	svc    *DefaultBookingService
	bus    *events.Bus
	client models.Client
	pro    models.Professional
	cut    models.Service
	lashes models.Service
	tpl    models.PackageTemplate
}

func pct(v float64) *float64 { return &v }

func newFixture(t *testing.T) *fixture {
	t.Helper()
	bus := events.NewBus()
	clock := utils.FixedClock{T: time.Date(2026, 10, 18, 8, 0, 0, 0, time.UTC)}
	salon := models.SalonSettings{OpenTime: "09:00", CloseTime: "18:00", WorkingDays: []int{1, 2, 3, 4, 5, 6}, DefaultCommission: 40}
	svc := NewDefaultBookingService(bus, clock, salon, nil, nil)

	f := &fixture{svc: svc, bus: bus}
	var err error
	f.cut, err = svc.Services.Add(models.Service{Name: "Cut", Price: decimal.NewFromInt(100), Duration: 60, CommissionPercentage: pct(30)})
	require.NoError(t, err)
	f.lashes, err = svc.Services.Add(models.Service{Name: "Lashes", Price: decimal.NewFromInt(200), Duration: 90, RetouchPeriod: 1})
	require.NoError(t, err)
	f.pro, err = svc.Professionals.Add(models.Professional{
		Name:       "Ana",
		ServiceIDs: []string{f.cut.ID, f.lashes.ID},
		CommissionOverrides: []models.CommissionOverride{
			{ItemID: f.lashes.ID, ItemType: models.ItemService, Percentage: 50},
		},
	})
	require.NoError(t, err)
	f.client, err = svc.Clients.Add(models.Client{Name: "Carla"})
	require.NoError(t, err)
	f.tpl, err = svc.Templates.Add(models.PackageTemplate{Name: "Lashes x2", ServiceID: f.lashes.ID, Price: decimal.NewFromInt(350), SessionCount: 2, ValidityDays: 30})
	require.NoError(t, err)
	return f
}

func (f *fixture) request(service models.Service, start string) BookingRequest {
	return BookingRequest{ClientID: f.client.ID, ProfessionalID: f.pro.ID, ServiceID: service.ID, Date: monday, StartTime: start}
}

func TestBookPricesAndSnapshots(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.Discounts.Add(models.WeeklyDiscount{
		Name: "Monday", ItemID: f.cut.ID, ItemType: models.ItemService, Days: []int{1},
		DiscountType: models.DiscountPercent, DiscountValue: decimal.NewFromInt(10),
	})
	require.NoError(t, err)

	appt, err := f.svc.Book(context.Background(), f.request(f.cut, "10:00"))
	require.NoError(t, err)

	assert.Equal(t, "10:00 / 10:30", appt.Time)
	assert.Equal(t, models.StatusScheduled, appt.Status)
	assert.Equal(t, models.PaymentPending, appt.PaymentStatus)
	assert.True(t, appt.Price.Equal(decimal.NewFromInt(90)), appt.Price.String())
	assert.True(t, appt.OriginalPrice.Equal(decimal.NewFromInt(100)))
	assert.Equal(t, "Monday", appt.DiscountName)
	assert.Equal(t, 30.0, appt.CommissionPercentage)
	assert.Equal(t, f.pro.Name, appt.Professional.Name)

	lash, err := f.svc.Book(context.Background(), f.request(f.lashes, "14:00"))
	require.NoError(t, err)
	assert.Equal(t, 50.0, lash.CommissionPercentage, "professional override wins")
	assert.Equal(t, "14:00 / 14:30 / 15:00", lash.Time)
}

func TestBookRejectsConflicts(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_, err := f.svc.Book(ctx, f.request(f.cut, "10:00"))
	require.NoError(t, err)

	for _, start := range []string{"10:00", "10:30", "09:30"} {
		_, err = f.svc.Book(ctx, f.request(f.cut, start))
		assert.ErrorIs(t, err, ErrSlotUnavailable, start)
	}

	_, err = f.svc.Book(ctx, f.request(f.cut, "11:00"))
	assert.NoError(t, err)

	// Outside working hours and off the grid.
	_, err = f.svc.Book(ctx, f.request(f.cut, "17:30"))
	assert.ErrorIs(t, err, ErrSlotUnavailable)
	_, err = f.svc.Book(ctx, f.request(f.cut, "12:15"))
	assert.ErrorIs(t, err, ErrSlotUnavailable)
}

func TestAdminBookingOutsideHours(t *testing.T) {
	f := newFixture(t)
	req := f.request(f.cut, "07:00")

	_, err := f.svc.Book(context.Background(), req)
	assert.ErrorIs(t, err, ErrSlotUnavailable)

	req.Admin = true
	appt, err := f.svc.Book(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "07:00 / 07:30", appt.Time)

	// Sunday is closed for clients but open to admins.
	req.Date = "2026-10-25"
	req.Admin = false
	_, err = f.svc.Book(context.Background(), req)
	assert.ErrorIs(t, err, ErrSlotUnavailable)
}

func TestBookValidatesReferences(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	req := f.request(f.cut, "10:00")
	req.ClientID = "ghost"
	_, err := f.svc.Book(ctx, req)
	assert.ErrorIs(t, err, utils.ErrNotFound)

	other, err := f.svc.Services.Add(models.Service{Name: "Nails", Duration: 30})
	require.NoError(t, err)
	_, err = f.svc.Book(ctx, f.request(other, "10:00"))
	assert.ErrorIs(t, err, utils.ErrValidation)

	req = f.request(f.cut, "10:00")
	req.Date = "19-10-2026"
	_, err = f.svc.Book(ctx, req)
	assert.ErrorIs(t, err, utils.ErrValidation)

	req = f.request(f.cut, "10:00")
	req.PaymentStatus = models.PaymentPaidWithPackage
	_, err = f.svc.Book(ctx, req)
	assert.ErrorIs(t, err, utils.ErrValidation)
}

func TestPackageBookingConsumesAndRefunds(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	purchase, err := f.svc.BuyPackage(ctx, f.client.ID, f.tpl.ID)
	require.NoError(t, err)
	pkgID := purchase.Package.ID
	assert.Equal(t, 2, purchase.Package.CreditsRemaining)

	req := f.request(f.lashes, "09:00")
	req.ClientPackageID = pkgID
	first, err := f.svc.Book(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, models.PaymentPaidWithPackage, first.PaymentStatus)

	req.StartTime = "11:00"
	_, err = f.svc.Book(ctx, req)
	require.NoError(t, err)

	pkg, _ := f.svc.Ledger.Get(pkgID)
	assert.Equal(t, 0, pkg.CreditsRemaining)

	req.StartTime = "14:00"
	_, err = f.svc.Book(ctx, req)
	assert.ErrorIs(t, err, ErrPackageNotUsable)
	assert.Len(t, f.svc.Appointments.List(), 2, "failed booking leaves nothing behind")

	require.NoError(t, f.svc.Cancel(ctx, first.ID))
	pkg, _ = f.svc.Ledger.Get(pkgID)
	assert.Equal(t, 1, pkg.CreditsRemaining)
	assert.Len(t, f.svc.Appointments.List(), 1)
}

func TestPackageMustMatchClientServiceAndDate(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	purchase, err := f.svc.BuyPackage(ctx, f.client.ID, f.tpl.ID)
	require.NoError(t, err)

	req := f.request(f.cut, "10:00")
	req.ClientPackageID = purchase.Package.ID
	_, err = f.svc.Book(ctx, req)
	assert.ErrorIs(t, err, ErrPackageNotUsable, "template covers lashes, not cuts")

	other, err := f.svc.Clients.Add(models.Client{Name: "Dora"})
	require.NoError(t, err)
	req = f.request(f.lashes, "10:00")
	req.ClientID = other.ID
	req.ClientPackageID = purchase.Package.ID
	_, err = f.svc.Book(ctx, req)
	assert.ErrorIs(t, err, ErrPackageNotUsable)

	// Expiry is 30 days after purchase.
	req = f.request(f.lashes, "10:00")
	req.ClientPackageID = purchase.Package.ID
	req.Date = "2026-11-28"
	_, err = f.svc.Book(ctx, req)
	assert.ErrorIs(t, err, ErrPackageNotUsable)
}

func TestChangePackage(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	a, err := f.svc.BuyPackage(ctx, f.client.ID, f.tpl.ID)
	require.NoError(t, err)
	b, err := f.svc.BuyPackage(ctx, f.client.ID, f.tpl.ID)
	require.NoError(t, err)

	req := f.request(f.lashes, "09:00")
	req.ClientPackageID = a.Package.ID
	appt, err := f.svc.Book(ctx, req)
	require.NoError(t, err)

	moved, err := f.svc.ChangePackage(ctx, appt.ID, b.Package.ID)
	require.NoError(t, err)
	assert.Equal(t, b.Package.ID, moved.ClientPackageID)

	pa, _ := f.svc.Ledger.Get(a.Package.ID)
	pb, _ := f.svc.Ledger.Get(b.Package.ID)
	assert.Equal(t, 2, pa.CreditsRemaining)
	assert.Equal(t, 1, pb.CreditsRemaining)

	detached, err := f.svc.ChangePackage(ctx, appt.ID, "")
	require.NoError(t, err)
	assert.Equal(t, models.PaymentPending, detached.PaymentStatus)
	pb, _ = f.svc.Ledger.Get(b.Package.ID)
	assert.Equal(t, 2, pb.CreditsRemaining)
}

func TestSetStatus(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	appt, err := f.svc.Book(ctx, f.request(f.cut, "10:00"))
	require.NoError(t, err)

	done, err := f.svc.SetStatus(ctx, appt.ID, models.StatusCompleted)
	require.NoError(t, err)
	assert.Equal(t, models.StatusCompleted, done.Status)

	_, err = f.svc.SetStatus(ctx, appt.ID, models.StatusCanceled)
	assert.ErrorIs(t, err, utils.ErrValidation)
	_, err = f.svc.SetStatus(ctx, appt.ID, "lost")
	assert.ErrorIs(t, err, utils.ErrValidation)

	// Completed appointments still occupy their slots.
	_, err = f.svc.Book(ctx, f.request(f.cut, "10:00"))
	assert.ErrorIs(t, err, ErrSlotUnavailable)
}

func TestConcurrentBookingsForSameSlot(t *testing.T) {
	f := newFixture(t)
	const attempts = 10

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		successes int
		conflicts int
	)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.svc.Book(context.Background(), f.request(f.cut, "10:00"))
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				successes++
			case assert.ErrorIs(t, err, ErrSlotUnavailable):
				conflicts++
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, successes)
	assert.Equal(t, attempts-1, conflicts)
	assert.Len(t, f.svc.Appointments.List(), 1)
}

func TestAvailableSlots(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_, err := f.svc.Book(ctx, f.request(f.cut, "10:00"))
	require.NoError(t, err)

	blocks, err := f.svc.AvailableSlots(ctx, f.pro.ID, f.cut.ID, monday, false)
	require.NoError(t, err)
	for _, b := range blocks {
		assert.NotContains(t, []string{"09:30", "10:00", "10:30", "17:30"}, b.StartSlot)
	}
	assert.Equal(t, "09:00", blocks[0].StartSlot)

	all, err := f.svc.AvailableSlots(ctx, f.pro.ID, f.cut.ID, monday, true)
	require.NoError(t, err)
	assert.Len(t, all, models.SlotsPerDay)

	_, err = f.svc.AvailableSlots(ctx, "ghost", f.cut.ID, monday, false)
	assert.ErrorIs(t, err, utils.ErrNotFound)
}

func TestQuote(t *testing.T) {
	f := newFixture(t)

	q, err := f.svc.Quote(f.pro.ID, f.tpl.ID, models.ItemPackage, monday)
	require.NoError(t, err)
	assert.True(t, q.EffectivePrice.Equal(decimal.NewFromInt(350)))
	assert.Equal(t, 40.0, q.Commission)

	q, err = f.svc.Quote(f.pro.ID, f.lashes.ID, models.ItemService, monday)
	require.NoError(t, err)
	assert.Equal(t, 50.0, q.Commission)

	_, err = f.svc.Quote(f.pro.ID, f.cut.ID, "voucher", monday)
	assert.ErrorIs(t, err, utils.ErrValidation)
}

func TestDeleteServiceCascades(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	purchase, err := f.svc.BuyPackage(ctx, f.client.ID, f.tpl.ID)
	require.NoError(t, err)
	req := f.request(f.lashes, "09:00")
	req.ClientPackageID = purchase.Package.ID
	_, err = f.svc.Book(ctx, req)
	require.NoError(t, err)
	_, err = f.svc.Book(ctx, f.request(f.cut, "14:00"))
	require.NoError(t, err)

	require.NoError(t, f.svc.DeleteService(ctx, f.lashes.ID))

	assert.Len(t, f.svc.Appointments.List(), 1)
	pkg, _ := f.svc.Ledger.Get(purchase.Package.ID)
	assert.Equal(t, 2, pkg.CreditsRemaining, "credit returned before the appointment went away")
	pro, _ := f.svc.Professionals.Get(f.pro.ID)
	assert.Equal(t, []string{f.cut.ID}, pro.ServiceIDs)

	assert.ErrorIs(t, f.svc.DeleteService(ctx, f.lashes.ID), utils.ErrNotFound)
}

func TestDeletePackageTemplateRemovesClientPackages(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_, err := f.svc.BuyPackage(ctx, f.client.ID, f.tpl.ID)
	require.NoError(t, err)

	require.NoError(t, f.svc.DeletePackageTemplate(ctx, f.tpl.ID))
	assert.Empty(t, f.svc.Ledger.ListForClient(f.client.ID))
}

func TestDeleteClientAndProfessional(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_, err := f.svc.BuyPackage(ctx, f.client.ID, f.tpl.ID)
	require.NoError(t, err)
	_, err = f.svc.Book(ctx, f.request(f.cut, "10:00"))
	require.NoError(t, err)

	require.NoError(t, f.svc.DeleteProfessional(ctx, f.pro.ID))
	assert.Empty(t, f.svc.Appointments.List())

	require.NoError(t, f.svc.DeleteClient(ctx, f.client.ID))
	assert.Empty(t, f.svc.Ledger.List())
	_, err = f.svc.Clients.Get(f.client.ID)
	assert.ErrorIs(t, err, utils.ErrNotFound)
}

func TestRetouchAlertsFromCompletedVisits(t *testing.T) {
	f := newFixture(t)
	f.svc.Appointments.Load([]models.Appointment{{
		ID: "old", ClientID: f.client.ID, Service: f.lashes, Professional: f.pro,
		Date: "2026-09-20", Time: "09:00", Status: models.StatusCompleted, PaymentStatus: models.PaymentPaid,
	}})

	alerts := f.svc.RetouchAlerts(-1, true)
	require.Len(t, alerts, 1)
	assert.Equal(t, 2, alerts[0].DaysUntilDue)
	assert.Equal(t, "Carla", alerts[0].ClientName)

	assert.Empty(t, f.svc.RetouchAlerts(1, false))
}

func TestStoreEventsReachSubscribers(t *testing.T) {
	f := newFixture(t)
	var kinds []models.EventKind
	f.bus.Subscribe(func(evt models.Event) { kinds = append(kinds, evt.Kind) })

	purchase, err := f.svc.BuyPackage(context.Background(), f.client.ID, f.tpl.ID)
	require.NoError(t, err)
	req := f.request(f.lashes, "09:00")
	req.ClientPackageID = purchase.Package.ID
	_, err = f.svc.Book(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, []models.EventKind{models.KindClientPackage, models.KindAppointment, models.KindClientPackage}, kinds)
}

func TestUpdatePackageTemplateKeepsBalancesWithinSessionCount(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	purchase, err := f.svc.BuyPackage(ctx, f.client.ID, f.tpl.ID)
	require.NoError(t, err)

	shrunk := f.tpl
	shrunk.SessionCount = 1
	_, err = f.svc.UpdatePackageTemplate(ctx, shrunk)
	assert.ErrorIs(t, err, utils.ErrValidation)
	tpl, _ := f.svc.Templates.Get(f.tpl.ID)
	assert.Equal(t, 2, tpl.SessionCount, "rejected edit leaves the template alone")

	// Once a credit is spent the smaller count fits.
	req := f.request(f.lashes, "09:00")
	req.ClientPackageID = purchase.Package.ID
	_, err = f.svc.Book(ctx, req)
	require.NoError(t, err)

	updated, err := f.svc.UpdatePackageTemplate(ctx, shrunk)
	require.NoError(t, err)
	assert.Equal(t, 1, updated.SessionCount)

	pkg, _ := f.svc.Ledger.Get(purchase.Package.ID)
	assert.LessOrEqual(t, pkg.CreditsRemaining, updated.SessionCount)

	shrunk.ID = "ghost"
	_, err = f.svc.UpdatePackageTemplate(ctx, shrunk)
	assert.ErrorIs(t, err, utils.ErrNotFound)
}

func TestConcurrentCancelsRefundOnce(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	purchase, err := f.svc.BuyPackage(ctx, f.client.ID, f.tpl.ID)
	require.NoError(t, err)

	// Two credits spent so a double refund would be visible below the cap.
	req := f.request(f.lashes, "09:00")
	req.ClientPackageID = purchase.Package.ID
	first, err := f.svc.Book(ctx, req)
	require.NoError(t, err)
	req.StartTime = "11:00"
	_, err = f.svc.Book(ctx, req)
	require.NoError(t, err)

	const attempts = 8
	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		ok   int
		gone int
	)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := f.svc.Cancel(ctx, first.ID)
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				ok++
			case assert.ErrorIs(t, err, utils.ErrNotFound):
				gone++
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, ok)
	assert.Equal(t, attempts-1, gone)
	pkg, _ := f.svc.Ledger.Get(purchase.Package.ID)
	assert.Equal(t, 1, pkg.CreditsRemaining)
}
