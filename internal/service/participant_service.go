package service

import (
	"strings"
	"time"

	"github.com/landdesk/internal/constants"
	"github.com/landdesk/internal/models"
	"github.com/landdesk/internal/repository"

	"github.com/shopspring/decimal"
)

// ParticipantService 交易参与方（持有人/投资人/买受人）服务
type ParticipantService struct {
	dealRepo     repository.DealRepository
	ownerRepo    repository.OwnerRepository
	investorRepo repository.InvestorRepository
	buyerRepo    repository.BuyerRepository
	paymentRepo  repository.PaymentRepository
}

// NewParticipantService 创建参与方服务实例
func NewParticipantService(
	dealRepo repository.DealRepository,
	ownerRepo repository.OwnerRepository,
	investorRepo repository.InvestorRepository,
	buyerRepo repository.BuyerRepository,
	paymentRepo repository.PaymentRepository,
) *ParticipantService {
	return &ParticipantService{
		dealRepo:     dealRepo,
		ownerRepo:    ownerRepo,
		investorRepo: investorRepo,
		buyerRepo:    buyerRepo,
		paymentRepo:  paymentRepo,
	}
}

// ParticipantInput 参与方通用输入
type ParticipantInput struct {
	Name             string
	Mobile           string
	Email            string
	AadharCard       string
	PanCard          string
	Address          string
	PercentageShare  float64
	InvestmentAmount *decimal.Decimal
}

func (s *ParticipantService) requireDeal(dealID uint) error {
	deal, err := s.dealRepo.GetByID(dealID)
	if err != nil {
		return err
	}
	if deal == nil {
		return ErrDealNotFound
	}
	return nil
}

// CreateOwner 创建持有人
func (s *ParticipantService) CreateOwner(dealID uint, input ParticipantInput) (*models.Owner, error) {
	if err := s.requireDeal(dealID); err != nil {
		return nil, err
	}
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrParticipantName
	}
	owner := &models.Owner{
		DealID:          dealID,
		Name:            name,
		Mobile:          strings.TrimSpace(input.Mobile),
		Email:           strings.TrimSpace(input.Email),
		AadharCard:      strings.TrimSpace(input.AadharCard),
		PanCard:         strings.TrimSpace(input.PanCard),
		Address:         input.Address,
		PercentageShare: input.PercentageShare,
	}
	if input.InvestmentAmount != nil {
		owner.InvestmentAmount = models.NewMoneyFromDecimal(*input.InvestmentAmount)
	}
	if err := s.ownerRepo.Create(owner); err != nil {
		return nil, err
	}
	return owner, nil
}

// ListOwners 列出交易持有人
func (s *ParticipantService) ListOwners(dealID uint) ([]models.Owner, error) {
	if err := s.requireDeal(dealID); err != nil {
		return nil, err
	}
	return s.ownerRepo.ListByDealID(dealID)
}

// UpdateOwner 更新持有人（空字段跳过）
func (s *ParticipantService) UpdateOwner(dealID, ownerID uint, input ParticipantInput) (*models.Owner, error) {
	owner, err := s.ownerRepo.GetByID(ownerID)
	if err != nil {
		return nil, err
	}
	if owner == nil || owner.DealID != dealID {
		return nil, ErrOwnerNotFound
	}
	applyParticipantFields(&owner.Name, &owner.Mobile, &owner.Email, &owner.AadharCard, &owner.PanCard, &owner.Address, input)
	if input.PercentageShare > 0 {
		owner.PercentageShare = input.PercentageShare
	}
	if input.InvestmentAmount != nil {
		owner.InvestmentAmount = models.NewMoneyFromDecimal(*input.InvestmentAmount)
	}
	if err := s.ownerRepo.Save(owner); err != nil {
		return nil, err
	}
	return owner, nil
}

// DeleteOwner 删除持有人
func (s *ParticipantService) DeleteOwner(dealID, ownerID uint) error {
	owner, err := s.ownerRepo.GetByID(ownerID)
	if err != nil {
		return err
	}
	if owner == nil || owner.DealID != dealID {
		return ErrOwnerNotFound
	}
	return s.ownerRepo.Delete(ownerID)
}

// StarOwner 设置/取消持有人标星
func (s *ParticipantService) StarOwner(dealID, ownerID uint, starred bool) error {
	owner, err := s.ownerRepo.GetByID(ownerID)
	if err != nil {
		return err
	}
	if owner == nil || owner.DealID != dealID {
		return ErrOwnerNotFound
	}
	_, err = s.ownerRepo.SetStarred(ownerID, starred)
	return err
}

// CreateInvestor 创建投资人
func (s *ParticipantService) CreateInvestor(dealID uint, input ParticipantInput) (*models.Investor, error) {
	if err := s.requireDeal(dealID); err != nil {
		return nil, err
	}
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrParticipantName
	}
	investor := &models.Investor{
		DealID:               dealID,
		InvestorName:         name,
		InvestmentPercentage: input.PercentageShare,
		Mobile:               strings.TrimSpace(input.Mobile),
		Email:                strings.TrimSpace(input.Email),
		AadharCard:           strings.TrimSpace(input.AadharCard),
		PanCard:              strings.TrimSpace(input.PanCard),
		Address:              input.Address,
	}
	if input.InvestmentAmount != nil {
		investor.InvestmentAmount = models.NewMoneyFromDecimal(*input.InvestmentAmount)
	}
	if err := s.investorRepo.Create(investor); err != nil {
		return nil, err
	}
	return investor, nil
}

// ListInvestors 列出交易投资人
func (s *ParticipantService) ListInvestors(dealID uint) ([]models.Investor, error) {
	if err := s.requireDeal(dealID); err != nil {
		return nil, err
	}
	return s.investorRepo.ListByDealID(dealID)
}

// UpdateInvestor 更新投资人（空字段跳过）
func (s *ParticipantService) UpdateInvestor(dealID, investorID uint, input ParticipantInput) (*models.Investor, error) {
	investor, err := s.investorRepo.GetByID(investorID)
	if err != nil {
		return nil, err
	}
	if investor == nil || investor.DealID != dealID {
		return nil, ErrInvestorNotFound
	}
	applyParticipantFields(&investor.InvestorName, &investor.Mobile, &investor.Email, &investor.AadharCard, &investor.PanCard, &investor.Address, input)
	if input.PercentageShare > 0 {
		investor.InvestmentPercentage = input.PercentageShare
	}
	if input.InvestmentAmount != nil {
		investor.InvestmentAmount = models.NewMoneyFromDecimal(*input.InvestmentAmount)
	}
	if err := s.investorRepo.Save(investor); err != nil {
		return nil, err
	}
	return investor, nil
}

// DeleteInvestor 删除投资人
func (s *ParticipantService) DeleteInvestor(dealID, investorID uint) error {
	investor, err := s.investorRepo.GetByID(investorID)
	if err != nil {
		return err
	}
	if investor == nil || investor.DealID != dealID {
		return ErrInvestorNotFound
	}
	return s.investorRepo.Delete(investorID)
}

// StarInvestor 设置/取消投资人标星
func (s *ParticipantService) StarInvestor(dealID, investorID uint, starred bool) error {
	investor, err := s.investorRepo.GetByID(investorID)
	if err != nil {
		return err
	}
	if investor == nil || investor.DealID != dealID {
		return ErrInvestorNotFound
	}
	_, err = s.investorRepo.SetStarred(investorID, starred)
	return err
}

// CreateBuyer 创建买受人
func (s *ParticipantService) CreateBuyer(dealID uint, input ParticipantInput) (*models.Buyer, error) {
	if err := s.requireDeal(dealID); err != nil {
		return nil, err
	}
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrParticipantName
	}
	buyer := &models.Buyer{
		DealID:     dealID,
		Name:       name,
		Mobile:     strings.TrimSpace(input.Mobile),
		Email:      strings.TrimSpace(input.Email),
		AadharCard: strings.TrimSpace(input.AadharCard),
		PanCard:    strings.TrimSpace(input.PanCard),
		Address:    input.Address,
	}
	if err := s.buyerRepo.Create(buyer); err != nil {
		return nil, err
	}
	return buyer, nil
}

// ListBuyers 列出交易买受人
func (s *ParticipantService) ListBuyers(dealID uint) ([]models.Buyer, error) {
	if err := s.requireDeal(dealID); err != nil {
		return nil, err
	}
	return s.buyerRepo.ListByDealID(dealID)
}

// UpdateBuyer 更新买受人（空字段跳过）
func (s *ParticipantService) UpdateBuyer(dealID, buyerID uint, input ParticipantInput) (*models.Buyer, error) {
	buyer, err := s.buyerRepo.GetByID(buyerID)
	if err != nil {
		return nil, err
	}
	if buyer == nil || buyer.DealID != dealID {
		return nil, ErrBuyerNotFound
	}
	applyParticipantFields(&buyer.Name, &buyer.Mobile, &buyer.Email, &buyer.AadharCard, &buyer.PanCard, &buyer.Address, input)
	if err := s.buyerRepo.Save(buyer); err != nil {
		return nil, err
	}
	return buyer, nil
}

// DeleteBuyer 删除买受人
func (s *ParticipantService) DeleteBuyer(dealID, buyerID uint) error {
	buyer, err := s.buyerRepo.GetByID(buyerID)
	if err != nil {
		return err
	}
	if buyer == nil || buyer.DealID != dealID {
		return ErrBuyerNotFound
	}
	return s.buyerRepo.Delete(buyerID)
}

// RecordInvestorToOwnerPayment 记录投资人付给持有人的直接转账
// 生成一条 investor → owner 的付款，并附带 pay-to 参与方份额。
func (s *ParticipantService) RecordInvestorToOwnerPayment(dealID, investorID, ownerID uint, amount decimal.Decimal, paymentDate string, mode, notes string, createdBy uint) (*models.Payment, error) {
	if err := s.requireDeal(dealID); err != nil {
		return nil, err
	}
	investor, err := s.investorRepo.GetByID(investorID)
	if err != nil {
		return nil, err
	}
	if investor == nil || investor.DealID != dealID {
		return nil, ErrInvestorNotFound
	}
	owner, err := s.ownerRepo.GetByID(ownerID)
	if err != nil {
		return nil, err
	}
	if owner == nil || owner.DealID != dealID {
		return nil, ErrOwnerNotFound
	}
	if !amount.IsPositive() {
		return nil, ErrInvalidAmount
	}
	parsed, ok := ParseFlexibleDate(paymentDate)
	if !ok {
		parsed = truncateToDate(time.Now())
	}

	payment := &models.Payment{
		DealID:      dealID,
		PartyType:   constants.PartyTypeInvestor,
		PartyID:     &investorID,
		Amount:      models.NewMoneyFromDecimal(amount),
		Currency:    constants.CurrencyDefault,
		PaymentDate: models.NewDate(parsed),
		PaymentMode: strings.TrimSpace(mode),
		Notes:       notes,
		Status:      constants.PaymentStatusCompleted,
		PaymentType: constants.PaymentTypeLandPurchase,
		PaidBy:      participantToken(constants.PartyTypeInvestor, investorID),
		PaidTo:      participantToken(constants.PartyTypeOwner, ownerID),
		CreatedBy:   createdBy,
	}
	if err := s.paymentRepo.Create(payment); err != nil {
		return nil, err
	}
	return payment, nil
}

// applyParticipantFields 非空字段覆盖
func applyParticipantFields(name, mobile, email, aadhar, pan, address *string, input ParticipantInput) {
	if v := strings.TrimSpace(input.Name); v != "" {
		*name = v
	}
	if v := strings.TrimSpace(input.Mobile); v != "" {
		*mobile = v
	}
	if v := strings.TrimSpace(input.Email); v != "" {
		*email = v
	}
	if v := strings.TrimSpace(input.AadharCard); v != "" {
		*aadhar = v
	}
	if v := strings.TrimSpace(input.PanCard); v != "" {
		*pan = v
	}
	if v := strings.TrimSpace(input.Address); v != "" {
		*address = v
	}
}
