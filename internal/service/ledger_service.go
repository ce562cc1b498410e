package service

import (
	"strconv"
	"strings"

	"github.com/landdesk/internal/config"
	"github.com/landdesk/internal/constants"
	"github.com/landdesk/internal/models"
	"github.com/landdesk/internal/repository"
)

// LedgerService 跨交易付款台账
type LedgerService struct {
	cfg          *config.Config
	paymentRepo  repository.PaymentRepository
	partyRepo    repository.PaymentPartyRepository
	dealRepo     repository.DealRepository
	ownerRepo    repository.OwnerRepository
	investorRepo repository.InvestorRepository
	buyerRepo    repository.BuyerRepository
	userRepo     repository.UserRepository
}

// NewLedgerService 创建台账服务实例
func NewLedgerService(
	cfg *config.Config,
	paymentRepo repository.PaymentRepository,
	partyRepo repository.PaymentPartyRepository,
	dealRepo repository.DealRepository,
	ownerRepo repository.OwnerRepository,
	investorRepo repository.InvestorRepository,
	buyerRepo repository.BuyerRepository,
	userRepo repository.UserRepository,
) *LedgerService {
	return &LedgerService{
		cfg:          cfg,
		paymentRepo:  paymentRepo,
		partyRepo:    partyRepo,
		dealRepo:     dealRepo,
		ownerRepo:    ownerRepo,
		investorRepo: investorRepo,
		buyerRepo:    buyerRepo,
		userRepo:     userRepo,
	}
}

// LedgerEntry 台账行：付款、所属交易名与解析后的付款/收款人名称
type LedgerEntry struct {
	models.Payment
	DealName   string                `json:"deal_name"`
	PaidByName string                `json:"paid_by_name"`
	PaidToName string                `json:"paid_to_name"`
	Parties    []models.PaymentParty `json:"parties"`
}

// Query 过滤查询台账并解析参与人显示名
// paid_by/paid_to 存储为 owner_3 形式的标记，按类型批量换取姓名。
func (s *LedgerService) Query(filter repository.LedgerFilter) ([]LedgerEntry, int64, error) {
	payments, total, err := s.paymentRepo.Ledger(filter)
	if err != nil {
		return nil, 0, err
	}

	ids := make([]uint, 0, len(payments))
	dealIDs := make([]uint, 0, len(payments))
	seenDeals := make(map[uint]bool)
	tokens := make([]string, 0, len(payments)*2)
	for _, p := range payments {
		ids = append(ids, p.ID)
		if !seenDeals[p.DealID] {
			seenDeals[p.DealID] = true
			dealIDs = append(dealIDs, p.DealID)
		}
		tokens = append(tokens, p.PaidBy, p.PaidTo)
	}

	parties, err := s.partyRepo.ListByPaymentIDs(ids)
	if err != nil {
		return nil, 0, err
	}
	partiesByPayment := make(map[uint][]models.PaymentParty)
	for _, party := range parties {
		partiesByPayment[party.PaymentID] = append(partiesByPayment[party.PaymentID], party)
	}

	dealNames, err := s.dealRepo.NamesByIDs(dealIDs)
	if err != nil {
		return nil, 0, err
	}
	tokenNames, err := s.resolveParticipantTokens(tokens)
	if err != nil {
		return nil, 0, err
	}

	entries := make([]LedgerEntry, 0, len(payments))
	for _, p := range payments {
		entries = append(entries, LedgerEntry{
			Payment:    p,
			DealName:   dealNames[p.DealID],
			PaidByName: resolveToken(p.PaidBy, tokenNames),
			PaidToName: resolveToken(p.PaidTo, tokenNames),
			Parties:    partiesByPayment[p.ID],
		})
	}
	return entries, total, nil
}

// resolveParticipantTokens 批量把 owner_3 / investor_5 / buyer_2 / user_7
// 形式的标记换成显示名
func (s *LedgerService) resolveParticipantTokens(tokens []string) (map[string]string, error) {
	idsByType := make(map[string][]uint)
	seen := make(map[string]bool)
	for _, token := range tokens {
		ptype, id, ok := parseParticipantToken(token)
		if !ok || seen[token] {
			continue
		}
		seen[token] = true
		idsByType[ptype] = append(idsByType[ptype], id)
	}

	names := make(map[string]string)
	fill := func(ptype string, lookup func([]uint) (map[uint]string, error)) error {
		ids := idsByType[ptype]
		if len(ids) == 0 {
			return nil
		}
		byID, err := lookup(ids)
		if err != nil {
			return err
		}
		for id, name := range byID {
			names[ptype+"_"+strconv.FormatUint(uint64(id), 10)] = name
		}
		return nil
	}

	if err := fill(constants.PartyTypeOwner, s.ownerRepo.NamesByIDs); err != nil {
		return nil, err
	}
	if err := fill(constants.PartyTypeInvestor, s.investorRepo.NamesByIDs); err != nil {
		return nil, err
	}
	if err := fill(constants.PartyTypeBuyer, s.buyerRepo.NamesByIDs); err != nil {
		return nil, err
	}
	if err := fill("user", s.userRepo.NamesByIDs); err != nil {
		return nil, err
	}
	return names, nil
}

// resolveToken 解析失败或查无此人时原样返回标记
func resolveToken(token string, names map[string]string) string {
	if token == "" {
		return ""
	}
	if name, ok := names[token]; ok && name != "" {
		return name
	}
	return token
}

// participantToken 生成 owner_3 形式的参与人标记
func participantToken(ptype string, id uint) string {
	return ptype + "_" + strconv.FormatUint(uint64(id), 10)
}

// parseParticipantToken 解析 owner_3 形式的参与人标记
func parseParticipantToken(token string) (string, uint, bool) {
	idx := strings.LastIndex(token, "_")
	if idx <= 0 || idx == len(token)-1 {
		return "", 0, false
	}
	ptype := strings.ToLower(token[:idx])
	switch ptype {
	case constants.PartyTypeOwner, constants.PartyTypeInvestor, constants.PartyTypeBuyer, "user":
	default:
		return "", 0, false
	}
	id, err := strconv.ParseUint(token[idx+1:], 10, 32)
	if err != nil || id == 0 {
		return "", 0, false
	}
	return ptype, uint(id), true
}
