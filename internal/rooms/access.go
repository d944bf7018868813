package rooms

import (
	"log"
	"time"

	"github.com/parleychat/parley/internal/database"
)

// TierBasic is the level every room starts at.
const TierBasic = 0

// Adult-flagged rooms may only be created by accounts at VIP level or
// above, and only entered by members of legal age.
const (
	vipLevel    = 3
	minAdultAge = 18
)

// Unlimited marks a quota with no ceiling.
const Unlimited = -1

// Rooms a user may own concurrently, by the user's subscription level.
var roomQuotaByLevel = []int{1, 3, 5, 10, Unlimited}

// Member capacity ceiling of a room, by the room's subscription tier.
var capacityByTier = []int{20, 50, 100, 200, 500}

func MaxRoomsAllowed(subscriptionLevel int) int {
	if subscriptionLevel < 0 {
		subscriptionLevel = 0
	}
	if subscriptionLevel >= len(roomQuotaByLevel) {
		subscriptionLevel = len(roomQuotaByLevel) - 1
	}
	return roomQuotaByLevel[subscriptionLevel]
}

func MaxRoomCapacity(tierLevel int) int {
	if tierLevel < 0 {
		tierLevel = 0
	}
	if tierLevel >= len(capacityByTier) {
		tierLevel = len(capacityByTier) - 1
	}
	return capacityByTier[tierLevel]
}

// ageAt computes full calendar years between birth and now, counting a
// birthday falling on the current date as already attained.
func ageAt(birth, now time.Time) int {
	years := now.Year() - birth.Year()
	if now.Month() < birth.Month() || (now.Month() == birth.Month() && now.Day() < birth.Day()) {
		years--
	}
	return years
}

// AccessGate answers quota, capacity, age, and subscription-tier
// questions by consulting the store. It never mutates state.
type AccessGate struct {
	log  *log.Logger
	repo database.ParleyRepository
	// enforce toggles the creation-time checks. The legacy system
	// shipped with them bypassed; they are on by default here and can
	// be switched off for backward compatibility.
	enforce bool
}

func NewAccessGate(logger *log.Logger, repo database.ParleyRepository, enforce bool) *AccessGate {
	return &AccessGate{
		log:     logger,
		repo:    repo,
		enforce: enforce,
	}
}

// CanCreateRoom checks the creator's subscription rank against the
// requested room tier, requires VIP standing for adult rooms, and
// enforces the per-user active-room quota.
func (g *AccessGate) CanCreateRoom(userId, roomTier int, adult bool) error {
	if !g.enforce {
		g.log.Printf("room creation checks bypassed for user %d", userId)
		return nil
	}

	account, err := g.repo.GetAccountById(userId)
	if err != nil {
		return wrapUnavailable("load creator account", err)
	}

	if account.SubscriptionLevel < roomTier {
		return newError(KindUnauthorized, "subscription level %d cannot create a tier %d room", account.SubscriptionLevel, roomTier)
	}

	if adult && account.SubscriptionLevel < vipLevel {
		return newError(KindUnauthorized, "adult rooms require VIP standing")
	}

	quota := MaxRoomsAllowed(account.SubscriptionLevel)
	if quota != Unlimited {
		owned, err := g.repo.CountRoomsByOwner(userId)
		if err != nil {
			return wrapUnavailable("count owned rooms", err)
		}
		if owned >= quota {
			return newError(KindQuotaExceeded, "user %d already owns %d of %d allowed rooms", userId, owned, quota)
		}
	}

	return nil
}

// CanJoinRoom re-derives the room's effective capacity from its tier
// and live member count. Callers must invoke it from the room's
// serialized session so the check cannot race the insert.
func (g *AccessGate) CanJoinRoom(room database.Room) (bool, error) {
	count, err := g.repo.CountMembers(room.Id)
	if err != nil {
		return false, wrapUnavailable("count members", err)
	}

	capacity := room.MaxUsers
	if ceiling := MaxRoomCapacity(room.SubscriptionLevel); capacity > ceiling {
		capacity = ceiling
	}

	return count < capacity, nil
}
