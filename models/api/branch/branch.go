package branchapimodels

import (
	"github.com/pkg/errors"
)

type BranchView struct {
	ID               string `json:"id"`
	CompanyID        string `json:"company_id"`
	Name             string `json:"name"`               // название филиала
	IsMain           bool   `json:"is_main"`            // признак главного филиала
	ParentBranchID   string `json:"parent_branch_id"`   // родительский филиал (для подфилиалов)
	ParentBranchName string `json:"parent_branch_name"` //
	Location         string `json:"location"`
	Head             string `json:"head"` // руководитель филиала
	IsActive         bool   `json:"is_active"`
}

type CreateBranch struct {
	Name           string `json:"name"`
	Location       string `json:"location"`
	Head           string `json:"head"`
	ParentBranchID string `json:"parent_branch_id"` // пусто = главный филиал
}

func (r CreateBranch) Validate() error {
	if r.Name == "" {
		return errors.New("не указано название филиала")
	}
	return nil
}

type UpdateBranch struct {
	Name           string `json:"name"`
	Location       string `json:"location"`
	Head           string `json:"head"`
	ParentBranchID string `json:"parent_branch_id"` // учитывается только для подфилиалов
}

func (r UpdateBranch) Validate() error {
	if r.Name == "" {
		return errors.New("не указано название филиала")
	}
	return nil
}

type SetStatus struct {
	IsActive bool `json:"is_active"`
}

func (r SetStatus) Validate() error {
	return nil
}

type EmployeeCount struct {
	BranchID      string `json:"branch_id"`
	BranchName    string `json:"branch_name"`
	EmployeeCount int64  `json:"employee_count"` // кол-во активных сотрудников
}
