package repository

import (
	"context"

	"github.com/aquaflow/sachet-api/internal/domain/entity"
	"github.com/aquaflow/sachet-api/internal/domain/enum"
	domainRepo "github.com/aquaflow/sachet-api/internal/domain/repository"
	"github.com/aquaflow/sachet-api/pkg/period"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type saleRepository struct {
	db *gorm.DB
}

// NewSaleRepository creates a new sale repository
func NewSaleRepository(db *gorm.DB) domainRepo.SaleRepository {
	return &saleRepository{db: db}
}

func (r *saleRepository) Create(ctx context.Context, sale *entity.Sale) error {
	return translate(conn(ctx, r.db).Create(sale).Error)
}

func (r *saleRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Sale, error) {
	return first[entity.Sale](conn(ctx, r.db), "id = ?", id)
}

func (r *saleRepository) Update(ctx context.Context, sale *entity.Sale) error {
	return translate(conn(ctx, r.db).Save(sale).Error)
}

func (r *saleRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return translate(conn(ctx, r.db).Delete(&entity.Sale{}, "id = ?", id).Error)
}

func (r *saleRepository) List(ctx context.Context, filter domainRepo.SaleFilter) ([]entity.Sale, error) {
	query := conn(ctx, r.db).Model(&entity.Sale{}).Scopes(DateRange("date", filter.Range))
	if filter.EmployeeID != nil {
		query = query.Where("employee_id = ?", *filter.EmployeeID)
	}

	var sales []entity.Sale
	err := query.Order("date DESC, created_at DESC").Find(&sales).Error
	return sales, err
}

func (r *saleRepository) SumBagsSold(ctx context.Context, rng period.Range) (int64, error) {
	var total int64
	err := conn(ctx, r.db).Model(&entity.Sale{}).
		Scopes(DateRange("date", rng)).
		Select("COALESCE(SUM(bags_sold), 0)").
		Row().Scan(&total)
	return total, err
}

type expenseRepository struct {
	db *gorm.DB
}

// NewExpenseRepository creates a new expense repository
func NewExpenseRepository(db *gorm.DB) domainRepo.ExpenseRepository {
	return &expenseRepository{db: db}
}

func (r *expenseRepository) Create(ctx context.Context, expense *entity.Expense) error {
	return translate(conn(ctx, r.db).Create(expense).Error)
}

func (r *expenseRepository) CreateBatch(ctx context.Context, expenses []entity.Expense) error {
	if len(expenses) == 0 {
		return nil
	}
	return translate(conn(ctx, r.db).Create(&expenses).Error)
}

func (r *expenseRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Expense, error) {
	return first[entity.Expense](conn(ctx, r.db), "id = ?", id)
}

func (r *expenseRepository) Update(ctx context.Context, expense *entity.Expense) error {
	return translate(conn(ctx, r.db).Save(expense).Error)
}

func (r *expenseRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return translate(conn(ctx, r.db).Delete(&entity.Expense{}, "id = ?", id).Error)
}

func (r *expenseRepository) List(ctx context.Context, filter domainRepo.ExpenseFilter) ([]entity.Expense, error) {
	query := conn(ctx, r.db).Model(&entity.Expense{}).Scopes(DateRange("date", filter.Range))
	if filter.Type != "" {
		// Legacy rows keep their original type name.
		switch filter.Type.Normalize() {
		case enum.ExpenseTypeFuel:
			query = query.Where("type IN ?", []enum.ExpenseType{enum.ExpenseTypeFuel, enum.ExpenseTypeGeneratorFuel})
		case enum.ExpenseTypeDriverFuel:
			query = query.Where("type IN ?", []enum.ExpenseType{enum.ExpenseTypeDriverFuel, enum.ExpenseTypeDriverPayment})
		default:
			query = query.Where("type = ?", filter.Type)
		}
	}

	var expenses []entity.Expense
	err := query.Order("date DESC, created_at DESC").Find(&expenses).Error
	return expenses, err
}

type materialPurchaseRepository struct {
	db *gorm.DB
}

// NewMaterialPurchaseRepository creates a new material purchase repository
func NewMaterialPurchaseRepository(db *gorm.DB) domainRepo.MaterialPurchaseRepository {
	return &materialPurchaseRepository{db: db}
}

func (r *materialPurchaseRepository) Create(ctx context.Context, purchase *entity.MaterialPurchase) error {
	return translate(conn(ctx, r.db).Create(purchase).Error)
}

func (r *materialPurchaseRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.MaterialPurchase, error) {
	return first[entity.MaterialPurchase](conn(ctx, r.db), "id = ?", id)
}

func (r *materialPurchaseRepository) Update(ctx context.Context, purchase *entity.MaterialPurchase) error {
	return translate(conn(ctx, r.db).Save(purchase).Error)
}

func (r *materialPurchaseRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return translate(conn(ctx, r.db).Delete(&entity.MaterialPurchase{}, "id = ?", id).Error)
}

func (r *materialPurchaseRepository) List(ctx context.Context, filter domainRepo.MaterialPurchaseFilter) ([]entity.MaterialPurchase, error) {
	query := conn(ctx, r.db).Model(&entity.MaterialPurchase{}).Scopes(DateRange("date", filter.Range))
	if filter.Type != "" {
		query = query.Where("type = ?", filter.Type)
	}

	var purchases []entity.MaterialPurchase
	err := query.Order("date DESC, created_at DESC").Find(&purchases).Error
	return purchases, err
}

func (r *materialPurchaseRepository) SumQuantityByType(ctx context.Context) (map[enum.MaterialType]int64, error) {
	var rows []struct {
		Type  enum.MaterialType
		Total int64
	}
	err := conn(ctx, r.db).Model(&entity.MaterialPurchase{}).
		Select("type, COALESCE(SUM(quantity), 0) AS total").
		Group("type").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	totals := make(map[enum.MaterialType]int64, len(rows))
	for _, row := range rows {
		totals[row.Type] = row.Total
	}
	return totals, nil
}

type packerEntryRepository struct {
	db *gorm.DB
}

// NewPackerEntryRepository creates a new packer entry repository
func NewPackerEntryRepository(db *gorm.DB) domainRepo.PackerEntryRepository {
	return &packerEntryRepository{db: db}
}

func (r *packerEntryRepository) Create(ctx context.Context, entry *entity.PackerEntry) error {
	return translate(conn(ctx, r.db).Create(entry).Error)
}

func (r *packerEntryRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.PackerEntry, error) {
	return first[entity.PackerEntry](conn(ctx, r.db), "id = ?", id)
}

func (r *packerEntryRepository) Update(ctx context.Context, entry *entity.PackerEntry) error {
	return translate(conn(ctx, r.db).Save(entry).Error)
}

func (r *packerEntryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return translate(conn(ctx, r.db).Delete(&entity.PackerEntry{}, "id = ?", id).Error)
}

func (r *packerEntryRepository) List(ctx context.Context, filter domainRepo.PackerEntryFilter) ([]entity.PackerEntry, error) {
	query := conn(ctx, r.db).Model(&entity.PackerEntry{}).Scopes(DateRange("date", filter.Range))
	if filter.EmployeeID != nil {
		query = query.Where("employee_id = ?", *filter.EmployeeID)
	}

	var entries []entity.PackerEntry
	err := query.Order("date DESC, created_at DESC").Find(&entries).Error
	return entries, err
}

type salaryPaymentRepository struct {
	db *gorm.DB
}

// NewSalaryPaymentRepository creates a new salary payment repository
func NewSalaryPaymentRepository(db *gorm.DB) domainRepo.SalaryPaymentRepository {
	return &salaryPaymentRepository{db: db}
}

func (r *salaryPaymentRepository) Create(ctx context.Context, payment *entity.SalaryPayment) error {
	return translate(conn(ctx, r.db).Create(payment).Error)
}

func (r *salaryPaymentRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.SalaryPayment, error) {
	return first[entity.SalaryPayment](conn(ctx, r.db), "id = ?", id)
}

func (r *salaryPaymentRepository) Update(ctx context.Context, payment *entity.SalaryPayment) error {
	return translate(conn(ctx, r.db).Save(payment).Error)
}

func (r *salaryPaymentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return translate(conn(ctx, r.db).Delete(&entity.SalaryPayment{}, "id = ?", id).Error)
}

func (r *salaryPaymentRepository) List(ctx context.Context, filter domainRepo.SalaryPaymentFilter) ([]entity.SalaryPayment, error) {
	query := conn(ctx, r.db).Model(&entity.SalaryPayment{}).Scopes(DateRange("paid_date", filter.Range))
	if filter.EmployeeID != nil {
		query = query.Where("employee_id = ?", *filter.EmployeeID)
	}

	var payments []entity.SalaryPayment
	err := query.Order("paid_date DESC, created_at DESC").Find(&payments).Error
	return payments, err
}

type employeeRepository struct {
	db *gorm.DB
}

// NewEmployeeRepository creates a new employee repository
func NewEmployeeRepository(db *gorm.DB) domainRepo.EmployeeRepository {
	return &employeeRepository{db: db}
}

func (r *employeeRepository) Create(ctx context.Context, employee *entity.Employee) error {
	return translate(conn(ctx, r.db).Create(employee).Error)
}

func (r *employeeRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Employee, error) {
	return first[entity.Employee](conn(ctx, r.db), "id = ?", id)
}

func (r *employeeRepository) GetByEmail(ctx context.Context, email string) (*entity.Employee, error) {
	return first[entity.Employee](conn(ctx, r.db), "LOWER(email) = LOWER(?)", email)
}

func (r *employeeRepository) Update(ctx context.Context, employee *entity.Employee) error {
	return translate(conn(ctx, r.db).Save(employee).Error)
}

func (r *employeeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return translate(conn(ctx, r.db).Delete(&entity.Employee{}, "id = ?", id).Error)
}

func (r *employeeRepository) List(ctx context.Context) ([]entity.Employee, error) {
	var employees []entity.Employee
	err := conn(ctx, r.db).Order("name ASC").Find(&employees).Error
	return employees, err
}
