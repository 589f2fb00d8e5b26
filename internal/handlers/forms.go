package handlers

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/hireboard/hireboard/internal/services"
)

var errInvalidInput = services.ErrInvalidInput

func init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		if err := services.RegisterValidations(v); err != nil {
			panic(err)
		}
	}
}

// OptionalInt binds a numeric field that may be blank in a form.
type OptionalInt struct {
	Value *int
}

func (o *OptionalInt) UnmarshalParam(param string) error {
	param = strings.TrimSpace(param)
	if param == "" {
		o.Value = nil
		return nil
	}
	n, err := strconv.Atoi(param)
	if err != nil {
		return err
	}
	o.Value = &n
	return nil
}

func (o *OptionalInt) UnmarshalJSON(b []byte) error {
	var raw any
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	switch v := raw.(type) {
	case nil:
		o.Value = nil
	case float64:
		if v != math.Trunc(v) || v < math.MinInt32 || v > math.MaxInt32 {
			return errInvalidInput
		}
		n := int(v)
		o.Value = &n
	case string:
		return o.UnmarshalParam(v)
	default:
		return errInvalidInput
	}
	return nil
}

// Checkbox binds an HTML checkbox ("on" when ticked) or a JSON boolean.
type Checkbox bool

func (b *Checkbox) UnmarshalParam(param string) error {
	switch strings.ToLower(strings.TrimSpace(param)) {
	case "", "0", "false", "off", "no":
		*b = false
	default:
		*b = true
	}
	return nil
}

func (b *Checkbox) UnmarshalJSON(data []byte) error {
	var v bool
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*b = Checkbox(v)
	return nil
}

// ConfirmPassword precedes Password so a mismatch is reported before the
// complexity policy.
type registerRequest struct {
	Email           string `form:"email" json:"email" binding:"required,email,email_domain"`
	Name            string `form:"name" json:"name" binding:"required,min=2,max=50,person_name"`
	ConfirmPassword string `form:"confirm_password" json:"confirm_password" binding:"required,eqfield=Password"`
	Password        string `form:"password" json:"password" binding:"required,min=8,has_upper,has_lower,has_digit,has_symbol"`
	Role            string `form:"role" json:"role" binding:"required,oneof=seeker employer"`
}

type loginRequest struct {
	Email    string   `form:"email" json:"email" binding:"required"`
	Password string   `form:"password" json:"password" binding:"required"`
	Remember Checkbox `form:"remember" json:"remember"`
}

type companyRequest struct {
	Name         string `form:"company_name" json:"company_name" binding:"required,max=200"`
	Description  string `form:"description" json:"description"`
	Industry     string `form:"industry" json:"industry" binding:"max=100"`
	Website      string `form:"website" json:"website" binding:"max=200"`
	ContactEmail string `form:"contact_email" json:"contact_email" binding:"omitempty,email,max=100"`
	Phone        string `form:"phone" json:"phone" binding:"max=20"`
	Address      string `form:"address" json:"address"`
}

func (r companyRequest) input() services.CompanyInput {
	return services.CompanyInput{
		Name:         r.Name,
		Description:  r.Description,
		Industry:     r.Industry,
		Website:      r.Website,
		ContactEmail: r.ContactEmail,
		Phone:        r.Phone,
		Address:      r.Address,
	}
}

type vacancyRequest struct {
	Title           string      `form:"title" json:"title" binding:"required,max=200"`
	Description     string      `form:"description" json:"description" binding:"required"`
	Requirements    string      `form:"requirements" json:"requirements" binding:"required"`
	SalaryMin       OptionalInt `form:"salary_min" json:"salary_min"`
	SalaryMax       OptionalInt `form:"salary_max" json:"salary_max"`
	EmploymentType  string      `form:"employment_type" json:"employment_type" binding:"max=50"`
	ExperienceLevel string      `form:"experience_level" json:"experience_level" binding:"max=50"`
	Location        string      `form:"location" json:"location" binding:"max=100"`
}

func (r vacancyRequest) input() services.VacancyInput {
	return services.VacancyInput{
		Title:           r.Title,
		Description:     r.Description,
		Requirements:    r.Requirements,
		SalaryMin:       r.SalaryMin.Value,
		SalaryMax:       r.SalaryMax.Value,
		EmploymentType:  r.EmploymentType,
		ExperienceLevel: r.ExperienceLevel,
		Location:        r.Location,
	}
}

type portfolioRequest struct {
	Title           string      `form:"title" json:"title" binding:"required,max=200"`
	Profession      string      `form:"profession" json:"profession" binding:"required,max=100"`
	Bio             string      `form:"bio" json:"bio"`
	Skills          string      `form:"skills" json:"skills"`
	ExperienceYears OptionalInt `form:"experience_years" json:"experience_years"`
	Education       string      `form:"education" json:"education"`
	Projects        string      `form:"projects" json:"projects"`
	ContactInfo     string      `form:"contact_info" json:"contact_info"`
	IsPublic        Checkbox    `form:"is_public" json:"is_public"`
}

func (r portfolioRequest) input() services.PortfolioInput {
	return services.PortfolioInput{
		Title:           r.Title,
		Profession:      r.Profession,
		Bio:             r.Bio,
		Skills:          r.Skills,
		ExperienceYears: r.ExperienceYears.Value,
		Education:       r.Education,
		Projects:        r.Projects,
		ContactInfo:     r.ContactInfo,
		IsPublic:        bool(r.IsPublic),
	}
}

type statusRequest struct {
	Status          string `form:"status" json:"status" binding:"required,oneof=pending reviewed accepted rejected"`
	RejectionReason string `form:"rejection_reason" json:"rejection_reason" binding:"required_if=Status rejected"`
}

type applyRequest struct {
	CoverLetter string `form:"cover_letter" json:"cover_letter"`
}

type searchRequest struct {
	Search         string `form:"search"`
	Experience     string `form:"experience"`
	EmploymentType string `form:"employment_type"`
	SalaryMin      string `form:"salary_min"`
	Sort           string `form:"sort"`
}

func (r searchRequest) input() services.SearchInput {
	return services.SearchInput{
		Search:         r.Search,
		Experience:     r.Experience,
		EmploymentType: r.EmploymentType,
		SalaryMin:      r.SalaryMin,
		Sort:           r.Sort,
	}
}
