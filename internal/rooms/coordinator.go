package rooms

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/teris-io/shortid"

	"github.com/parleychat/parley/internal/database"
	"github.com/parleychat/parley/internal/presence"
	"github.com/parleychat/parley/internal/stats"
	"github.com/parleychat/parley/internal/types"
)

const publishTimeout = 5 * time.Second

// Coordinator orchestrates every client-initiated room operation. It is
// the only writer of room and membership state; the access gate and the
// role tables are read-only consultants. After a successful mutation it
// enqueues an event for the presence broadcaster. The store commit is
// authoritative and delivery is best-effort.
type Coordinator struct {
	log         *log.Logger
	repo        database.ParleyRepository
	gate        *AccessGate
	broadcaster presence.Broadcaster
	stats       stats.StatsProvider

	sessions     map[int]*session
	sessionsLock sync.Mutex
	closed       bool

	events chan outboundEvent
	stop   chan struct{}
	done   chan struct{}
}

type outboundEvent struct {
	roomId int
	// username targets the event at a personal channel instead of the
	// room group.
	username string
	name     string
	payload  any
}

func NewCoordinator(logger *log.Logger, repo database.ParleyRepository, gate *AccessGate, b presence.Broadcaster, sp stats.StatsProvider) *Coordinator {
	for _, metric := range []string{
		"LoadedSessions",
		"RoomsCreated",
		"RoomJoins",
		"MessagesSent",
		"EventsPublished",
		"EventsDropped",
	} {
		sp.RegisterMetric(metric)
	}

	return &Coordinator{
		log:         logger,
		repo:        repo,
		gate:        gate,
		broadcaster: b,
		stats:       sp,
		sessions:    make(map[int]*session),
		events:      make(chan outboundEvent, 256),
		stop:        make(chan struct{}),
		done:        make(chan struct{}),
	}
}

// Run drains the outbound event queue. Publish failures are logged and
// never surfaced to the operation that produced the event.
func (c *Coordinator) Run() {
	for {
		select {
		case ev := <-c.events:
			c.publish(ev)
		case <-c.stop:
			for {
				select {
				case ev := <-c.events:
					c.publish(ev)
				default:
					close(c.done)
					return
				}
			}
		}
	}
}

func (c *Coordinator) Shutdown() {
	c.sessionsLock.Lock()
	c.closed = true
	sessions := make([]*session, 0, len(c.sessions))
	for _, s := range c.sessions {
		sessions = append(sessions, s)
	}
	c.sessions = make(map[int]*session)
	c.sessionsLock.Unlock()

	for _, s := range sessions {
		close(s.exit)
		<-s.done
	}

	close(c.stop)
	<-c.done
}

func (c *Coordinator) publish(ev outboundEvent) {
	ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
	defer cancel()

	var err error
	if ev.username != "" {
		err = c.broadcaster.PublishToUser(ctx, ev.username, ev.name, ev.payload)
	} else {
		err = c.broadcaster.PublishToRoom(ctx, ev.roomId, ev.name, ev.payload)
	}
	if err != nil {
		// the mutation is already committed; delivery is best-effort
		c.log.Printf("publish %s: %v", ev.name, err)
		return
	}

	c.stats.Incr("EventsPublished")
}

func (c *Coordinator) enqueue(ev outboundEvent) {
	select {
	case c.events <- ev:
	default:
		c.log.Printf("event queue full, dropping %s for room %d", ev.name, ev.roomId)
		c.stats.Incr("EventsDropped")
	}
}

func (c *Coordinator) publishToRoom(roomId int, name string, payload any) {
	c.enqueue(outboundEvent{roomId: roomId, name: name, payload: payload})
}

func (c *Coordinator) publishToUser(username, name string, payload any) {
	c.enqueue(outboundEvent{username: username, name: name, payload: payload})
}

// dispatch runs fn on the room's session goroutine and waits for it to
// complete. Enqueueing happens under the sessions lock so an idle
// unload can never strand a command.
func (c *Coordinator) dispatch(roomId int, fn func()) error {
	finished := make(chan struct{})
	cmd := func() {
		defer close(finished)
		fn()
	}

	for {
		c.sessionsLock.Lock()
		if c.closed {
			c.sessionsLock.Unlock()
			return newError(KindUnavailable, "coordinator is shutting down")
		}

		s, ok := c.sessions[roomId]
		if !ok {
			s = newSession(roomId)
			c.sessions[roomId] = s
			c.stats.Incr("LoadedSessions")
			go s.run(c)
		}

		select {
		case s.cmds <- cmd:
			c.sessionsLock.Unlock()
			<-finished
			return nil
		default:
			// command buffer is full; wait for the session to make
			// progress (or exit) and retry. Sends only ever happen under
			// the lock so an idle unload cannot strand a command.
			c.sessionsLock.Unlock()
			select {
			case <-s.done:
			case <-time.After(10 * time.Millisecond):
			}
		}
	}
}

// tryUnloadSession removes an idle session. It refuses when a command
// raced in while the idle timer fired.
func (c *Coordinator) tryUnloadSession(s *session) bool {
	c.sessionsLock.Lock()
	defer c.sessionsLock.Unlock()

	if len(s.cmds) > 0 {
		return false
	}

	if c.sessions[s.roomId] == s {
		delete(c.sessions, s.roomId)
	}
	close(s.done)
	c.stats.Decr("LoadedSessions")
	c.log.Printf("unloaded idle session for room %d", s.roomId)

	return true
}

type CreateRoomParams struct {
	Name        string
	Description string
	CategoryId  int
	MaxUsers    int
	Private     bool
	Password    string
	Adult       bool
	// Tier is accepted for forward compatibility but ignored: rooms are
	// always created at the basic tier and upgraded separately.
	Tier int
}

func (c *Coordinator) CreateRoom(userId int, params CreateRoomParams) (types.Room, error) {
	if err := c.gate.CanCreateRoom(userId, TierBasic, params.Adult); err != nil {
		return types.Room{}, err
	}

	tier, err := c.repo.GetTierByLevel(TierBasic)
	if err != nil {
		return types.Room{}, wrapUnavailable("load basic tier", err)
	}

	maxUsers := params.MaxUsers
	if ceiling := MaxRoomCapacity(TierBasic); maxUsers <= 0 || maxUsers > ceiling {
		maxUsers = ceiling
	}

	sid, err := shortid.Generate()
	if err != nil {
		return types.Room{}, wrapUnavailable("generate room id", err)
	}

	var categoryId sql.NullInt64
	if params.CategoryId > 0 {
		categoryId = sql.NullInt64{Int64: int64(params.CategoryId), Valid: true}
	}

	dbRoom, err := c.repo.CreateRoom(database.CreateRoomParams{
		Name:              params.Name,
		ExternalId:        sid,
		Description:       params.Description,
		CategoryId:        categoryId,
		OwnerId:           userId,
		MaxUsers:          maxUsers,
		IsPrivate:         params.Private,
		Password:          params.Password,
		IsAdult:           params.Adult,
		SubscriptionLevel: TierBasic,
		OwnerRole:         int(RoleOwner),
		BasicTierId:       tier.Id,
	})
	if err != nil {
		return types.Room{}, wrapUnavailable("create room", err)
	}

	// the creator must come back as the Owner member or the room is
	// unusable; treat a missing row as a failed creation
	if _, err := c.repo.GetMember(dbRoom.Id, userId); err != nil {
		return types.Room{}, wrapUnavailable("room created without owner membership", err)
	}

	c.stats.Incr("RoomsCreated")

	return roomView(dbRoom), nil
}

type JoinReason string

const (
	JoinReasonWrongPassword JoinReason = "wrong_password"
	JoinReasonRoomFull      JoinReason = "room_full"
	JoinReasonAgeRestricted JoinReason = "age_restricted"
)

// JoinResult keeps the legacy success/failure boolean while exposing a
// reason code for callers that want to know why entry was denied.
type JoinResult struct {
	Joined        bool         `json:"joined"`
	AlreadyMember bool         `json:"already_member,omitempty"`
	Reason        JoinReason   `json:"reason,omitempty"`
	Member        types.Member `json:"member,omitempty"`
}

func (c *Coordinator) JoinRoom(userId, roomId int, password string) (JoinResult, error) {
	var (
		res   JoinResult
		opErr error
	)
	if err := c.dispatch(roomId, func() {
		res, opErr = c.join(userId, roomId, password)
	}); err != nil {
		return JoinResult{}, err
	}

	return res, opErr
}

func (c *Coordinator) join(userId, roomId int, password string) (JoinResult, error) {
	room, err := c.repo.GetRoom(roomId)
	if errors.Is(err, sql.ErrNoRows) {
		return JoinResult{}, newError(KindNotFound, "room %d not found", roomId)
	}
	if err != nil {
		return JoinResult{}, wrapUnavailable("load room", err)
	}
	if !room.IsActive {
		return JoinResult{}, newError(KindNotFound, "room %d not found", roomId)
	}

	if room.IsPrivate && room.Password != password {
		return JoinResult{Reason: JoinReasonWrongPassword}, nil
	}

	account, err := c.repo.GetAccountById(userId)
	if err != nil {
		return JoinResult{}, wrapUnavailable("load account", err)
	}

	if room.IsAdult {
		// a missing birthdate fails closed
		if !account.Birthdate.Valid || ageAt(account.Birthdate.Time, time.Now().UTC()) < minAdultAge {
			return JoinResult{Reason: JoinReasonAgeRestricted}, nil
		}
	}

	member, err := c.repo.GetMember(roomId, userId)
	if err == nil {
		// already a member: idempotent, but repair the owner's rank if a
		// demotion left them with a lesser row
		if userId == room.OwnerId && Role(member.Role) != RoleOwner {
			if err := c.repo.UpdateMemberRole(roomId, userId, int(RoleOwner)); err != nil {
				return JoinResult{}, wrapUnavailable("restore owner rank", err)
			}
			member.Role = int(RoleOwner)
		}

		return JoinResult{
			Joined:        true,
			AlreadyMember: true,
			Member:        memberView(member, account),
		}, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return JoinResult{}, wrapUnavailable("load membership", err)
	}

	ok, err := c.gate.CanJoinRoom(room)
	if err != nil {
		return JoinResult{}, err
	}
	if !ok {
		return JoinResult{Reason: JoinReasonRoomFull}, nil
	}

	role := RoleMember
	if userId == room.OwnerId {
		role = RoleOwner
	}

	dbMember, err := c.repo.CreateMember(database.CreateMemberParams{
		RoomId: roomId,
		UserId: userId,
		Role:   int(role),
	})
	if err != nil {
		return JoinResult{}, wrapUnavailable("create membership", err)
	}

	view := memberView(dbMember, account)
	c.publishToRoom(roomId, EventUserJoined, UserJoined{Member: view})
	c.stats.Incr("RoomJoins")

	return JoinResult{Joined: true, Member: view}, nil
}

// LeaveRoom removes the membership row unconditionally and announces
// the departure to the room group.
func (c *Coordinator) LeaveRoom(userId, roomId int) error {
	var opErr error
	if err := c.dispatch(roomId, func() {
		if err := c.repo.DeleteMember(roomId, userId); err != nil {
			opErr = wrapUnavailable("delete membership", err)
			return
		}
		c.publishToRoom(roomId, EventUserLeft, UserLeft{UserId: userId})
	}); err != nil {
		return err
	}

	return opErr
}

func (c *Coordinator) DeleteRoom(userId, roomId int) error {
	var opErr error
	if err := c.dispatch(roomId, func() {
		room, err := c.repo.GetRoom(roomId)
		if errors.Is(err, sql.ErrNoRows) {
			opErr = newError(KindNotFound, "room %d not found", roomId)
			return
		}
		if err != nil {
			opErr = wrapUnavailable("load room", err)
			return
		}

		if room.OwnerId != userId {
			opErr = newError(KindUnauthorized, "only the room owner may delete room %d", roomId)
			return
		}

		if err := c.repo.DeleteRoom(roomId); err != nil {
			opErr = wrapUnavailable("delete room", err)
			return
		}

		c.publishToRoom(roomId, EventRoomDeleted, RoomDeleted{RoomId: roomId})
	}); err != nil {
		return err
	}

	return opErr
}

type SendMessageParams struct {
	Content    string
	Type       string
	Attachment string
}

func (c *Coordinator) SendMessage(userId, roomId int, params SendMessageParams) (types.Message, error) {
	var (
		msg   types.Message
		opErr error
	)
	if err := c.dispatch(roomId, func() {
		msg, opErr = c.sendMessage(userId, roomId, params)
	}); err != nil {
		return types.Message{}, err
	}

	return msg, opErr
}

func (c *Coordinator) sendMessage(userId, roomId int, params SendMessageParams) (types.Message, error) {
	room, err := c.repo.GetRoom(roomId)
	if errors.Is(err, sql.ErrNoRows) {
		return types.Message{}, newError(KindNotFound, "room %d not found", roomId)
	}
	if err != nil {
		return types.Message{}, wrapUnavailable("load room", err)
	}

	member, err := c.repo.GetMember(roomId, userId)
	if errors.Is(err, sql.ErrNoRows) {
		return types.Message{}, newError(KindUnauthorized, "user %d is not a member of room %d", userId, roomId)
	}
	if err != nil {
		return types.Message{}, wrapUnavailable("load membership", err)
	}
	if member.Muted {
		return types.Message{}, newError(KindUnauthorized, "user %d is muted in room %d", userId, roomId)
	}

	// the sender's role and display name can change between messages,
	// so they are re-resolved on every send
	role, err := c.effectiveRole(room, userId)
	if err != nil {
		return types.Message{}, err
	}

	account, err := c.repo.GetAccountById(userId)
	if err != nil {
		return types.Message{}, wrapUnavailable("load sender account", err)
	}

	msgType := params.Type
	if msgType == "" {
		msgType = "text"
	}

	dbMsg, err := c.repo.CreateMessage(database.CreateMessageParams{
		RoomId:     roomId,
		SenderId:   userId,
		Content:    params.Content,
		Type:       msgType,
		Attachment: params.Attachment,
	})
	if err != nil {
		return types.Message{}, wrapUnavailable("create message", err)
	}

	msg := types.Message{
		Id:         dbMsg.Id,
		RoomId:     dbMsg.RoomId,
		SenderId:   dbMsg.SenderId,
		Sender:     displayName(account),
		Role:       role.String(),
		RoleColor:  role.Color(),
		Content:    dbMsg.Content,
		Type:       dbMsg.Type,
		Attachment: dbMsg.Attachment,
		Timestamp:  dbMsg.CreatedAt,
	}

	c.publishToRoom(roomId, EventReceiveMessage, ReceiveMessage{Message: msg})
	c.stats.Incr("MessagesSent")

	return msg, nil
}

// StatusUpdate carries the presence flags to change; nil fields are
// left untouched.
type StatusUpdate struct {
	CameraOn   *bool
	MicOn      *bool
	HandRaised *bool
}

func (c *Coordinator) UpdateMemberStatus(userId, roomId int, update StatusUpdate) error {
	if update.CameraOn == nil && update.MicOn == nil && update.HandRaised == nil {
		return nil
	}

	var opErr error
	if err := c.dispatch(roomId, func() {
		n, err := c.repo.UpdateMemberStatus(database.UpdateMemberStatusParams{
			RoomId:     roomId,
			UserId:     userId,
			CameraOn:   nullBool(update.CameraOn),
			MicOn:      nullBool(update.MicOn),
			HandRaised: nullBool(update.HandRaised),
		})
		if err != nil {
			opErr = wrapUnavailable("update member status", err)
			return
		}
		if n == 0 {
			opErr = newError(KindNotFound, "user %d is not a member of room %d", userId, roomId)
			return
		}

		c.publishToRoom(roomId, EventMemberStatusUpdated, MemberStatusUpdated{
			UserId:     userId,
			CameraOn:   update.CameraOn,
			MicOn:      update.MicOn,
			HandRaised: update.HandRaised,
		})
	}); err != nil {
		return err
	}

	return opErr
}

func (c *Coordinator) AssignRole(assignerId, roomId, targetId int, roleName string) error {
	role, err := ParseRole(roleName)
	if err != nil {
		return err
	}

	var opErr error
	if err := c.dispatch(roomId, func() {
		opErr = c.assignRole(assignerId, roomId, targetId, role)
	}); err != nil {
		return err
	}

	return opErr
}

func (c *Coordinator) assignRole(assignerId, roomId, targetId int, role Role) error {
	room, err := c.repo.GetRoom(roomId)
	if errors.Is(err, sql.ErrNoRows) {
		return newError(KindNotFound, "room %d not found", roomId)
	}
	if err != nil {
		return wrapUnavailable("load room", err)
	}

	actorRole, err := c.effectiveRole(room, assignerId)
	if err != nil {
		return err
	}

	if !CanAssign(actorRole, role) {
		return newError(KindUnauthorized, "%s may not assign %s", actorRole, role)
	}

	friends, err := c.repo.FriendshipExists(assignerId, targetId)
	if err != nil {
		return wrapUnavailable("check friendship", err)
	}
	if !friends {
		return newError(KindUnauthorized, "roles may only be assigned to friends")
	}

	if _, err := c.repo.GetMember(roomId, targetId); errors.Is(err, sql.ErrNoRows) {
		return newError(KindNotFound, "user %d is not a member of room %d", targetId, roomId)
	} else if err != nil {
		return wrapUnavailable("load target membership", err)
	}

	if _, err := c.repo.UpsertAdminAssignment(database.UpsertAdminAssignmentParams{
		RoomId:     roomId,
		UserId:     targetId,
		Role:       int(role),
		AssignedBy: assignerId,
	}); err != nil {
		return wrapUnavailable("store role assignment", err)
	}

	target, err := c.repo.GetAccountById(targetId)
	if err != nil {
		return wrapUnavailable("load target account", err)
	}

	// delivered to the target's personal channel: they may not be
	// viewing the room when their role changes
	c.publishToUser(target.Username, EventRoleAssigned, RoleAssigned{
		RoomId:   room.Id,
		RoomName: room.Name,
		Role:     role.String(),
	})

	return nil
}

func (c *Coordinator) RemoveRole(removerId, roomId, targetId int) error {
	var opErr error
	if err := c.dispatch(roomId, func() {
		opErr = c.removeRole(removerId, roomId, targetId)
	}); err != nil {
		return err
	}

	return opErr
}

func (c *Coordinator) removeRole(removerId, roomId, targetId int) error {
	room, err := c.repo.GetRoom(roomId)
	if errors.Is(err, sql.ErrNoRows) {
		return newError(KindNotFound, "room %d not found", roomId)
	}
	if err != nil {
		return wrapUnavailable("load room", err)
	}

	actorRole, err := c.effectiveRole(room, removerId)
	if err != nil {
		return err
	}

	assignment, err := c.repo.GetAdminAssignment(roomId, targetId)
	if errors.Is(err, sql.ErrNoRows) {
		return newError(KindNotFound, "user %d holds no elevated role in room %d", targetId, roomId)
	}
	if err != nil {
		return wrapUnavailable("load role assignment", err)
	}

	if !CanRemove(actorRole, Role(assignment.Role)) {
		return newError(KindUnauthorized, "%s may not remove %s", actorRole, Role(assignment.Role))
	}

	if err := c.repo.DeleteAdminAssignment(roomId, targetId); err != nil {
		return wrapUnavailable("delete role assignment", err)
	}

	target, err := c.repo.GetAccountById(targetId)
	if err != nil {
		return wrapUnavailable("load target account", err)
	}

	c.publishToUser(target.Username, EventRoleRemoved, RoleRemoved{
		RoomId:   room.Id,
		RoomName: room.Name,
	})

	return nil
}

func (c *Coordinator) UpgradeSubscription(userId, roomId, level int, paymentRef string) (types.Room, error) {
	var (
		room  types.Room
		opErr error
	)
	if err := c.dispatch(roomId, func() {
		room, opErr = c.upgradeSubscription(userId, roomId, level, paymentRef)
	}); err != nil {
		return types.Room{}, err
	}

	return room, opErr
}

func (c *Coordinator) upgradeSubscription(userId, roomId, level int, paymentRef string) (types.Room, error) {
	dbRoom, err := c.repo.GetRoom(roomId)
	if errors.Is(err, sql.ErrNoRows) {
		return types.Room{}, newError(KindNotFound, "room %d not found", roomId)
	}
	if err != nil {
		return types.Room{}, wrapUnavailable("load room", err)
	}

	if dbRoom.OwnerId != userId {
		return types.Room{}, newError(KindUnauthorized, "only the room owner may change the subscription")
	}

	tier, err := c.repo.GetTierByLevel(level)
	if errors.Is(err, sql.ErrNoRows) {
		return types.Room{}, newError(KindNotFound, "subscription tier %d not found", level)
	}
	if err != nil {
		return types.Room{}, wrapUnavailable("load tier", err)
	}

	if dbRoom.IsAdult && tier.Level < vipLevel {
		return types.Room{}, newError(KindUnauthorized, "adult rooms require the VIP tier or above")
	}

	now := time.Now().UTC()
	var expires sql.NullTime
	if tier.Level > TierBasic {
		expires = sql.NullTime{Time: now.AddDate(0, 1, 0), Valid: true}
	}

	if err := c.repo.UpgradeRoomSubscription(database.UpgradeSubscriptionParams{
		RoomId:       roomId,
		TierId:       tier.Id,
		TierLevel:    tier.Level,
		TierMaxUsers: tier.MaxUsers,
		PurchaserId:  userId,
		StartsAt:     now,
		ExpiresAt:    expires,
		PaymentRef:   paymentRef,
	}); err != nil {
		return types.Room{}, wrapUnavailable("upgrade subscription", err)
	}

	updated, err := c.repo.GetRoom(roomId)
	if err != nil {
		return types.Room{}, wrapUnavailable("reload room", err)
	}

	return roomView(updated), nil
}

// ListMembers returns the room's members with their effective roles.
// Named elevated roles the caller cannot see are presented as the
// member's base rank.
func (c *Coordinator) ListMembers(callerId, roomId int) ([]types.Member, error) {
	room, err := c.repo.GetRoom(roomId)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, newError(KindNotFound, "room %d not found", roomId)
	}
	if err != nil {
		return nil, wrapUnavailable("load room", err)
	}

	actorRole, err := c.effectiveRole(room, callerId)
	if err != nil {
		return nil, err
	}

	members, err := c.repo.ListMembers(roomId)
	if err != nil {
		return nil, wrapUnavailable("list members", err)
	}

	assignments, err := c.repo.ListAdminAssignments(roomId)
	if err != nil {
		return nil, wrapUnavailable("list role assignments", err)
	}
	overlay := make(map[int]Role, len(assignments))
	for _, a := range assignments {
		if r := Role(a.Role); r.Valid() {
			overlay[a.UserId] = r
		}
	}

	views := make([]types.Member, 0, len(members))
	for _, m := range members {
		account, err := c.repo.GetAccountById(m.UserId)
		if err != nil {
			return nil, wrapUnavailable("load member account", err)
		}

		view := memberView(m, account)
		if m.UserId == room.OwnerId {
			view.Role = RoleOwner.String()
			view.RoleColor = RoleOwner.Color()
		} else if named, ok := overlay[m.UserId]; ok {
			if CanSee(actorRole, named) || callerId == m.UserId || actorRole == RoleOwner {
				view.Role = named.String()
				view.RoleColor = named.Color()
			}
		}

		views = append(views, view)
	}

	return views, nil
}

// effectiveRole reconciles the two role systems: the base member rank
// is authoritative for Owner and Member, while the named overlay is
// authoritative for SuperAdmin, Admin, and Moderator.
func (c *Coordinator) effectiveRole(room database.Room, userId int) (Role, error) {
	member, err := c.repo.GetMember(room.Id, userId)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, newError(KindUnauthorized, "user %d is not a member of room %d", userId, room.Id)
	}
	if err != nil {
		return 0, wrapUnavailable("load membership", err)
	}

	if userId == room.OwnerId || Role(member.Role) == RoleOwner {
		return RoleOwner, nil
	}

	assignment, err := c.repo.GetAdminAssignment(room.Id, userId)
	if err == nil {
		if r := Role(assignment.Role); r.Valid() {
			return r, nil
		}
	} else if !errors.Is(err, sql.ErrNoRows) {
		return 0, wrapUnavailable("load role assignment", err)
	}

	return Role(member.Role), nil
}

func displayName(account database.Account) string {
	if account.DisplayName != "" {
		return account.DisplayName
	}
	return account.Username
}

func nullBool(b *bool) sql.NullBool {
	if b == nil {
		return sql.NullBool{}
	}
	return sql.NullBool{Bool: *b, Valid: true}
}

func roomView(r database.Room) types.Room {
	return types.Room{
		Id:                r.Id,
		ExternalId:        r.ExternalId,
		Name:              r.Name,
		Description:       r.Description,
		CategoryId:        int(r.CategoryId.Int64),
		OwnerId:           r.OwnerId,
		MaxUsers:          r.MaxUsers,
		IsPrivate:         r.IsPrivate,
		IsAdult:           r.IsAdult,
		SubscriptionLevel: r.SubscriptionLevel,
		IsActive:          r.IsActive,
		CreatedAt:         r.CreatedAt,
		UpdatedAt:         r.UpdatedAt,
	}
}

func memberView(m database.Member, account database.Account) types.Member {
	role := Role(m.Role)
	return types.Member{
		RoomId:      m.RoomId,
		UserId:      m.UserId,
		Username:    account.Username,
		DisplayName: account.DisplayName,
		Avatar:      account.Avatar,
		Gender:      account.Gender,
		Role:        role.String(),
		RoleColor:   role.Color(),
		Banned:      m.Banned,
		Muted:       m.Muted,
		HandRaised:  m.HandRaised,
		CameraOn:    m.CameraOn,
		MicOn:       m.MicOn,
		JoinedAt:    m.CreatedAt,
	}
}
