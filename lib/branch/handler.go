package branchhandler

import (
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"ops-portal-backend/db"
	branchstore "ops-portal-backend/lib/branch/store"
	initchecker "ops-portal-backend/lib/utils/init-checker"
	branchapimodels "ops-portal-backend/models/api/branch"
	dbmodels "ops-portal-backend/models/db"
)

type Provider interface {
	Create(companyID string, request branchapimodels.CreateBranch) (id string, err error)
	Update(companyID, branchID string, request branchapimodels.UpdateBranch) error
	Get(companyID, branchID string) (view branchapimodels.BranchView, err error)
	GetList(companyID string) (list []branchapimodels.BranchView, err error)
	GetActiveList(companyID string) (list []branchapimodels.BranchView, err error)
	GetSubBranches(companyID, branchID string) (list []branchapimodels.BranchView, err error)
	SetStatus(companyID, branchID string, isActive bool) error
	GetEmployeeCounts(companyID string) (list []branchapimodels.EmployeeCount, err error)
}

var Instance Provider

func NewHandler() {
	instance := impl{
		store: branchstore.NewInstance(db.DB),
	}
	initchecker.CheckInit(
		"store", instance.store,
	)
	Instance = instance
}

type impl struct {
	store branchstore.Provider
}

// Create структура филиалов двухуровневая, подфилиал можно создать
// только под главным филиалом
func (i impl) Create(companyID string, request branchapimodels.CreateBranch) (id string, err error) {
	logger := log.WithField("company_id", companyID).
		WithField("branch_name", request.Name)
	exist, err := i.store.ExistByName(companyID, request.Name)
	if err != nil {
		return "", err
	}
	if exist {
		return "", errors.New("филиал с таким названием уже существует")
	}
	rec := dbmodels.Branch{
		CompanyID: companyID,
		Name:      request.Name,
		Location:  request.Location,
		Head:      request.Head,
		IsMain:    request.ParentBranchID == "",
		IsActive:  true,
	}
	if request.ParentBranchID != "" {
		parent, err := i.store.GetByID(request.ParentBranchID)
		if err != nil {
			return "", err
		}
		if parent == nil || parent.CompanyID != companyID {
			return "", errors.New("родительский филиал не найден")
		}
		if !parent.IsMain {
			return "", errors.New("подфилиал можно создать только под главным филиалом")
		}
		rec.ParentBranchID = &request.ParentBranchID
	}
	id, err = i.store.Create(rec)
	if err != nil {
		logger.WithError(err).Error("ошибка создания филиала")
		return "", err
	}
	logger.
		WithField("rec_id", id).
		Info("создан филиал")
	return id, nil
}

func (i impl) Update(companyID, branchID string, request branchapimodels.UpdateBranch) error {
	rec, err := i.getOwn(companyID, branchID)
	if err != nil {
		return err
	}
	if rec.Name != request.Name {
		exist, err := i.store.ExistByName(companyID, request.Name)
		if err != nil {
			return err
		}
		if exist {
			return errors.New("филиал с таким названием уже существует")
		}
	}
	updMap := map[string]interface{}{
		"name":     request.Name,
		"location": request.Location,
		"head":     request.Head,
	}
	// главный филиал переподчинить нельзя
	if !rec.IsMain && request.ParentBranchID != "" {
		parent, err := i.store.GetByID(request.ParentBranchID)
		if err != nil {
			return err
		}
		if parent == nil || parent.CompanyID != companyID {
			return errors.New("родительский филиал не найден")
		}
		if !parent.IsMain {
			return errors.New("подфилиал можно создать только под главным филиалом")
		}
		updMap["parent_branch_id"] = request.ParentBranchID
	}
	return i.store.Update(branchID, updMap)
}

func (i impl) Get(companyID, branchID string) (view branchapimodels.BranchView, err error) {
	rec, err := i.getOwn(companyID, branchID)
	if err != nil {
		return branchapimodels.BranchView{}, err
	}
	return rec.ToModel(), nil
}

func (i impl) GetList(companyID string) (list []branchapimodels.BranchView, err error) {
	recList, err := i.store.GetList(companyID)
	if err != nil {
		return nil, err
	}
	list = make([]branchapimodels.BranchView, 0, len(recList))
	for _, rec := range recList {
		list = append(list, rec.ToModel())
	}
	return list, nil
}

func (i impl) GetActiveList(companyID string) (list []branchapimodels.BranchView, err error) {
	recList, err := i.store.GetActiveList(companyID)
	if err != nil {
		return nil, err
	}
	list = make([]branchapimodels.BranchView, 0, len(recList))
	for _, rec := range recList {
		list = append(list, rec.ToModel())
	}
	return list, nil
}

func (i impl) GetSubBranches(companyID, branchID string) (list []branchapimodels.BranchView, err error) {
	_, err = i.getOwn(companyID, branchID)
	if err != nil {
		return nil, err
	}
	recList, err := i.store.GetSubBranches(branchID)
	if err != nil {
		return nil, err
	}
	list = make([]branchapimodels.BranchView, 0, len(recList))
	for _, rec := range recList {
		list = append(list, rec.ToModel())
	}
	return list, nil
}

func (i impl) SetStatus(companyID, branchID string, isActive bool) error {
	logger := log.WithField("company_id", companyID).
		WithField("rec_id", branchID)
	_, err := i.getOwn(companyID, branchID)
	if err != nil {
		return err
	}
	err = db.DB.Transaction(func(tx *gorm.DB) error {
		return branchstore.NewInstance(tx).SetStatusCascade(branchID, isActive)
	})
	if err != nil {
		logger.WithError(err).Error("ошибка смены статуса филиала")
		return err
	}
	logger.
		WithField("is_active", isActive).
		Info("изменен статус филиала")
	return nil
}

func (i impl) GetEmployeeCounts(companyID string) (list []branchapimodels.EmployeeCount, err error) {
	return i.store.GetEmployeeCounts(companyID)
}

func (i impl) getOwn(companyID, branchID string) (*dbmodels.Branch, error) {
	rec, err := i.store.GetByID(branchID)
	if err != nil {
		return nil, err
	}
	if rec == nil || rec.CompanyID != companyID {
		return nil, errors.New("филиал не найден")
	}
	return rec, nil
}
