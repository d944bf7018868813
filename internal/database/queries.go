package database

import (
	"database/sql"
	"fmt"
	"time"
)

const (
	accountColumns = "id, username, display_name, email, password_hash, avatar, gender, birthdate, subscription_level, created_at, updated_at"
	roomColumns    = "id, external_id, name, description, category_id, owner_id, max_users, is_private, password, is_adult, subscription_level, is_active, created_at, updated_at"
	memberColumns  = "room_id, user_id, role, banned, muted, hand_raised, camera_on, mic_on, created_at, updated_at"

	createMemberQuery = "INSERT INTO room_members (room_id, user_id, role, created_at, updated_at) " +
		"VALUES ($1, $2, $3, $4, $4) " +
		"ON CONFLICT (room_id, user_id) DO UPDATE SET role = EXCLUDED.role, updated_at = EXCLUDED.updated_at " +
		"RETURNING " + memberColumns

	upsertSubscriptionQuery = "INSERT INTO room_subscriptions (room_id, tier_id, purchaser_id, starts_at, expires_at, payment_ref, created_at, updated_at) " +
		"VALUES ($1, $2, $3, $4, $5, $6, $7, $7) " +
		"ON CONFLICT (room_id) DO UPDATE SET tier_id = EXCLUDED.tier_id, purchaser_id = EXCLUDED.purchaser_id, " +
		"starts_at = EXCLUDED.starts_at, expires_at = EXCLUDED.expires_at, payment_ref = EXCLUDED.payment_ref, updated_at = EXCLUDED.updated_at"
)

func scanAccount(row *sql.Row) (Account, error) {
	var a Account
	err := row.Scan(
		&a.Id,
		&a.Username,
		&a.DisplayName,
		&a.EmailAddress,
		&a.PasswordHash,
		&a.Avatar,
		&a.Gender,
		&a.Birthdate,
		&a.SubscriptionLevel,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	return a, err
}

func scanRoom(row *sql.Row) (Room, error) {
	var r Room
	err := row.Scan(
		&r.Id,
		&r.ExternalId,
		&r.Name,
		&r.Description,
		&r.CategoryId,
		&r.OwnerId,
		&r.MaxUsers,
		&r.IsPrivate,
		&r.Password,
		&r.IsAdult,
		&r.SubscriptionLevel,
		&r.IsActive,
		&r.CreatedAt,
		&r.UpdatedAt,
	)
	return r, err
}

func (db *PgParleyRepository) CreateAccount(params CreateAccountParams) (Account, error) {
	row := db.conn.QueryRow(
		"INSERT INTO accounts (username, display_name, email, password_hash, avatar, gender, birthdate, created_at, updated_at) "+
			"VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $8) RETURNING "+accountColumns,
		params.Username,
		params.DisplayName,
		params.EmailAddress,
		params.PasswordHash,
		params.Avatar,
		params.Gender,
		params.Birthdate,
		time.Now().UTC(),
	)

	return scanAccount(row)
}

func (db *PgParleyRepository) UpdateAccount(params UpdateAccountParams) (Account, error) {
	row := db.conn.QueryRow(
		"UPDATE accounts SET display_name = $2, avatar = $3, password_hash = $4, updated_at = $5 "+
			"WHERE id = $1 RETURNING "+accountColumns,
		params.UserId,
		params.DisplayName,
		params.Avatar,
		params.PasswordHash,
		time.Now().UTC(),
	)

	return scanAccount(row)
}

func (db *PgParleyRepository) GetAccountById(accountId int) (Account, error) {
	row := db.conn.QueryRow(
		"SELECT "+accountColumns+" FROM accounts WHERE id = $1 LIMIT 1",
		accountId,
	)

	return scanAccount(row)
}

func (db *PgParleyRepository) GetAccountByEmail(email string) (Account, error) {
	row := db.conn.QueryRow(
		"SELECT "+accountColumns+" FROM accounts WHERE email = $1 LIMIT 1",
		email,
	)

	return scanAccount(row)
}

func (db *PgParleyRepository) GetAccountByUsername(username string) (Account, error) {
	row := db.conn.QueryRow(
		"SELECT "+accountColumns+" FROM accounts WHERE username = $1 LIMIT 1",
		username,
	)

	return scanAccount(row)
}

func (db *PgParleyRepository) CreateFriendship(userId, friendId int) error {
	_, err := db.conn.Exec(
		"INSERT INTO friendships (user_id, friend_id, created_at) VALUES ($1, $2, $3) "+
			"ON CONFLICT (user_id, friend_id) DO NOTHING",
		userId,
		friendId,
		time.Now().UTC(),
	)

	return err
}

// FriendshipExists reports whether an accepted social connection exists
// between the two users, in either direction.
func (db *PgParleyRepository) FriendshipExists(userId, friendId int) (bool, error) {
	row := db.conn.QueryRow(
		"SELECT EXISTS (SELECT 1 FROM friendships WHERE (user_id = $1 AND friend_id = $2) OR (user_id = $2 AND friend_id = $1))",
		userId,
		friendId,
	)

	var exists bool
	err := row.Scan(&exists)

	return exists, err
}

// CreateRoom inserts the room, its owner membership row, and its initial
// subscription record in a single transaction.
func (db *PgParleyRepository) CreateRoom(params CreateRoomParams) (Room, error) {
	tx, err := db.conn.Begin()
	if err != nil {
		return Room{}, err
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	now := time.Now().UTC()
	row := tx.QueryRow(
		"INSERT INTO rooms (external_id, name, description, category_id, owner_id, max_users, is_private, password, is_adult, subscription_level, is_active, created_at, updated_at) "+
			"VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, TRUE, $11, $11) RETURNING "+roomColumns,
		params.ExternalId,
		params.Name,
		params.Description,
		params.CategoryId,
		params.OwnerId,
		params.MaxUsers,
		params.IsPrivate,
		params.Password,
		params.IsAdult,
		params.SubscriptionLevel,
		now,
	)

	var room Room
	room, err = scanRoom(row)
	if err != nil {
		return Room{}, err
	}

	_, err = tx.Exec(createMemberQuery, room.Id, params.OwnerId, params.OwnerRole, now)
	if err != nil {
		return Room{}, err
	}

	_, err = tx.Exec(upsertSubscriptionQuery, room.Id, params.BasicTierId, params.OwnerId, now, sql.NullTime{}, "", now)
	if err != nil {
		return Room{}, err
	}

	if err = tx.Commit(); err != nil {
		return Room{}, err
	}

	return room, nil
}

func (db *PgParleyRepository) GetRoom(roomId int) (Room, error) {
	row := db.conn.QueryRow(
		"SELECT "+roomColumns+" FROM rooms WHERE id = $1 LIMIT 1",
		roomId,
	)

	return scanRoom(row)
}

func (db *PgParleyRepository) GetRoomByExternalId(externalId string) (Room, error) {
	row := db.conn.QueryRow(
		"SELECT "+roomColumns+" FROM rooms WHERE external_id = $1 LIMIT 1",
		externalId,
	)

	return scanRoom(row)
}

func (db *PgParleyRepository) ListActiveRooms() ([]Room, error) {
	rows, err := db.conn.Query(
		"SELECT " + roomColumns + " FROM rooms WHERE is_active = TRUE ORDER BY created_at",
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rooms []Room
	for rows.Next() {
		var r Room
		if err = rows.Scan(
			&r.Id,
			&r.ExternalId,
			&r.Name,
			&r.Description,
			&r.CategoryId,
			&r.OwnerId,
			&r.MaxUsers,
			&r.IsPrivate,
			&r.Password,
			&r.IsAdult,
			&r.SubscriptionLevel,
			&r.IsActive,
			&r.CreatedAt,
			&r.UpdatedAt,
		); err != nil {
			break
		}

		rooms = append(rooms, r)
	}

	return rooms, err
}

func (db *PgParleyRepository) CountRoomsByOwner(ownerId int) (int, error) {
	row := db.conn.QueryRow(
		"SELECT COUNT(*) FROM rooms WHERE owner_id = $1 AND is_active = TRUE",
		ownerId,
	)

	var count int
	err := row.Scan(&count)

	return count, err
}

func (db *PgParleyRepository) SetRoomActive(roomId int, active bool) error {
	_, err := db.conn.Exec(
		"UPDATE rooms SET is_active = $2, updated_at = $3 WHERE id = $1",
		roomId,
		active,
		time.Now().UTC(),
	)

	return err
}

func (db *PgParleyRepository) DeleteRoom(roomId int) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	for _, q := range []string{
		"DELETE FROM room_admin_assignments WHERE room_id = $1",
		"DELETE FROM room_messages WHERE room_id = $1",
		"DELETE FROM room_subscriptions WHERE room_id = $1",
		"DELETE FROM room_members WHERE room_id = $1",
		"DELETE FROM rooms WHERE id = $1",
	} {
		if _, err = tx.Exec(q, roomId); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (db *PgParleyRepository) ListCategories() ([]Category, error) {
	rows, err := db.conn.Query(
		"SELECT id, name, parent_id, sort_order FROM room_categories ORDER BY sort_order, id",
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []Category
	for rows.Next() {
		var c Category
		if err = rows.Scan(&c.Id, &c.Name, &c.ParentId, &c.SortOrder); err != nil {
			break
		}

		categories = append(categories, c)
	}

	return categories, err
}

func scanMember(row *sql.Row) (Member, error) {
	var m Member
	err := row.Scan(
		&m.RoomId,
		&m.UserId,
		&m.Role,
		&m.Banned,
		&m.Muted,
		&m.HandRaised,
		&m.CameraOn,
		&m.MicOn,
		&m.CreatedAt,
		&m.UpdatedAt,
	)
	return m, err
}

func (db *PgParleyRepository) CreateMember(params CreateMemberParams) (Member, error) {
	row := db.conn.QueryRow(
		createMemberQuery,
		params.RoomId,
		params.UserId,
		params.Role,
		time.Now().UTC(),
	)

	return scanMember(row)
}

func (db *PgParleyRepository) GetMember(roomId, userId int) (Member, error) {
	row := db.conn.QueryRow(
		"SELECT "+memberColumns+" FROM room_members WHERE room_id = $1 AND user_id = $2 LIMIT 1",
		roomId,
		userId,
	)

	return scanMember(row)
}

func (db *PgParleyRepository) ListMembers(roomId int) ([]Member, error) {
	rows, err := db.conn.Query(
		"SELECT "+memberColumns+" FROM room_members WHERE room_id = $1 ORDER BY created_at",
		roomId,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var members []Member
	for rows.Next() {
		var m Member
		if err = rows.Scan(
			&m.RoomId,
			&m.UserId,
			&m.Role,
			&m.Banned,
			&m.Muted,
			&m.HandRaised,
			&m.CameraOn,
			&m.MicOn,
			&m.CreatedAt,
			&m.UpdatedAt,
		); err != nil {
			break
		}

		members = append(members, m)
	}

	return members, err
}

func (db *PgParleyRepository) CountMembers(roomId int) (int, error) {
	row := db.conn.QueryRow(
		"SELECT COUNT(*) FROM room_members WHERE room_id = $1",
		roomId,
	)

	var count int
	err := row.Scan(&count)

	return count, err
}

func (db *PgParleyRepository) UpdateMemberRole(roomId, userId, role int) error {
	res, err := db.conn.Exec(
		"UPDATE room_members SET role = $3, updated_at = $4 WHERE room_id = $1 AND user_id = $2",
		roomId,
		userId,
		role,
		time.Now().UTC(),
	)
	if err != nil {
		return err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}

	return nil
}

// UpdateMemberStatus applies only the flags carried as non-null
// parameters and returns the number of rows changed.
func (db *PgParleyRepository) UpdateMemberStatus(params UpdateMemberStatusParams) (int64, error) {
	res, err := db.conn.Exec(
		"UPDATE room_members SET "+
			"camera_on = COALESCE($3, camera_on), "+
			"mic_on = COALESCE($4, mic_on), "+
			"hand_raised = COALESCE($5, hand_raised), "+
			"updated_at = $6 "+
			"WHERE room_id = $1 AND user_id = $2",
		params.RoomId,
		params.UserId,
		params.CameraOn,
		params.MicOn,
		params.HandRaised,
		time.Now().UTC(),
	)
	if err != nil {
		return 0, err
	}

	return res.RowsAffected()
}

func (db *PgParleyRepository) DeleteMember(roomId, userId int) error {
	_, err := db.conn.Exec(
		"DELETE FROM room_members WHERE room_id = $1 AND user_id = $2",
		roomId,
		userId,
	)

	return err
}

func scanTier(row *sql.Row) (SubscriptionTier, error) {
	var t SubscriptionTier
	err := row.Scan(
		&t.Id,
		&t.Level,
		&t.Name,
		&t.Description,
		&t.MaxUsers,
		&t.MaxStreams,
		&t.AlwaysOnline,
		&t.PriceCents,
	)
	return t, err
}

func (db *PgParleyRepository) GetTierByLevel(level int) (SubscriptionTier, error) {
	row := db.conn.QueryRow(
		"SELECT id, level, name, description, max_users, max_streams, always_online, price_cents "+
			"FROM subscription_tiers WHERE level = $1 LIMIT 1",
		level,
	)

	return scanTier(row)
}

func (db *PgParleyRepository) ListTiers() ([]SubscriptionTier, error) {
	rows, err := db.conn.Query(
		"SELECT id, level, name, description, max_users, max_streams, always_online, price_cents " +
			"FROM subscription_tiers ORDER BY level",
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tiers []SubscriptionTier
	for rows.Next() {
		var t SubscriptionTier
		if err = rows.Scan(
			&t.Id,
			&t.Level,
			&t.Name,
			&t.Description,
			&t.MaxUsers,
			&t.MaxStreams,
			&t.AlwaysOnline,
			&t.PriceCents,
		); err != nil {
			break
		}

		tiers = append(tiers, t)
	}

	return tiers, err
}

func (db *PgParleyRepository) GetRoomSubscription(roomId int) (RoomSubscription, error) {
	row := db.conn.QueryRow(
		"SELECT s.id, s.room_id, s.tier_id, t.level, s.purchaser_id, s.starts_at, s.expires_at, s.payment_ref, s.created_at, s.updated_at "+
			"FROM room_subscriptions s JOIN subscription_tiers t ON s.tier_id = t.id "+
			"WHERE s.room_id = $1 LIMIT 1",
		roomId,
	)

	var sub RoomSubscription
	err := row.Scan(
		&sub.Id,
		&sub.RoomId,
		&sub.TierId,
		&sub.TierLevel,
		&sub.PurchaserId,
		&sub.StartsAt,
		&sub.ExpiresAt,
		&sub.PaymentRef,
		&sub.CreatedAt,
		&sub.UpdatedAt,
	)

	return sub, err
}

// UpgradeRoomSubscription updates the subscription record and the
// denormalized subscription level on the room in one transaction so the
// two can never diverge. The room's capacity is clamped to the new
// tier's ceiling.
func (db *PgParleyRepository) UpgradeRoomSubscription(params UpgradeSubscriptionParams) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	now := time.Now().UTC()
	_, err = tx.Exec(
		upsertSubscriptionQuery,
		params.RoomId,
		params.TierId,
		params.PurchaserId,
		params.StartsAt,
		params.ExpiresAt,
		params.PaymentRef,
		now,
	)
	if err != nil {
		return err
	}

	res, err := tx.Exec(
		"UPDATE rooms SET subscription_level = $2, max_users = LEAST(max_users, $3), updated_at = $4 WHERE id = $1",
		params.RoomId,
		params.TierLevel,
		params.TierMaxUsers,
		now,
	)
	if err != nil {
		return err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		err = fmt.Errorf("room %d not found", params.RoomId)
		return err
	}

	return tx.Commit()
}

func (db *PgParleyRepository) CreateMessage(params CreateMessageParams) (Message, error) {
	row := db.conn.QueryRow(
		"INSERT INTO room_messages (room_id, sender_id, content, type, attachment, created_at) "+
			"VALUES ($1, $2, $3, $4, $5, $6) RETURNING id, room_id, sender_id, content, type, attachment, created_at",
		params.RoomId,
		params.SenderId,
		params.Content,
		params.Type,
		params.Attachment,
		time.Now().UTC(),
	)

	var msg Message
	err := row.Scan(
		&msg.Id,
		&msg.RoomId,
		&msg.SenderId,
		&msg.Content,
		&msg.Type,
		&msg.Attachment,
		&msg.CreatedAt,
	)

	return msg, err
}

func (db *PgParleyRepository) GetMessages(roomId, before, limit int) ([]Message, error) {
	var upper int = 1<<31 - 1
	if before > 0 {
		upper = before - 1
	}

	if limit <= 0 {
		limit = 20
	}

	rows, err := db.conn.Query(
		"SELECT id, room_id, sender_id, content, type, attachment, created_at FROM room_messages "+
			"WHERE room_id = $1 AND id <= $2 ORDER BY id DESC LIMIT $3",
		roomId,
		upper,
		limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var messages = make([]Message, 0, limit)
	for rows.Next() {
		var msg Message
		if err = rows.Scan(
			&msg.Id,
			&msg.RoomId,
			&msg.SenderId,
			&msg.Content,
			&msg.Type,
			&msg.Attachment,
			&msg.CreatedAt,
		); err != nil {
			break
		}

		messages = append(messages, msg)
	}

	return messages, err
}

func (db *PgParleyRepository) GetAdminAssignment(roomId, userId int) (AdminAssignment, error) {
	row := db.conn.QueryRow(
		"SELECT room_id, user_id, role, assigned_by, created_at FROM room_admin_assignments "+
			"WHERE room_id = $1 AND user_id = $2 LIMIT 1",
		roomId,
		userId,
	)

	var a AdminAssignment
	err := row.Scan(&a.RoomId, &a.UserId, &a.Role, &a.AssignedBy, &a.CreatedAt)

	return a, err
}

func (db *PgParleyRepository) ListAdminAssignments(roomId int) ([]AdminAssignment, error) {
	rows, err := db.conn.Query(
		"SELECT room_id, user_id, role, assigned_by, created_at FROM room_admin_assignments "+
			"WHERE room_id = $1 ORDER BY created_at",
		roomId,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var assignments []AdminAssignment
	for rows.Next() {
		var a AdminAssignment
		if err = rows.Scan(&a.RoomId, &a.UserId, &a.Role, &a.AssignedBy, &a.CreatedAt); err != nil {
			break
		}

		assignments = append(assignments, a)
	}

	return assignments, err
}

func (db *PgParleyRepository) UpsertAdminAssignment(params UpsertAdminAssignmentParams) (AdminAssignment, error) {
	row := db.conn.QueryRow(
		"INSERT INTO room_admin_assignments (room_id, user_id, role, assigned_by, created_at) "+
			"VALUES ($1, $2, $3, $4, $5) "+
			"ON CONFLICT (room_id, user_id) DO UPDATE SET role = EXCLUDED.role, assigned_by = EXCLUDED.assigned_by, created_at = EXCLUDED.created_at "+
			"RETURNING room_id, user_id, role, assigned_by, created_at",
		params.RoomId,
		params.UserId,
		params.Role,
		params.AssignedBy,
		time.Now().UTC(),
	)

	var a AdminAssignment
	err := row.Scan(&a.RoomId, &a.UserId, &a.Role, &a.AssignedBy, &a.CreatedAt)

	return a, err
}

func (db *PgParleyRepository) DeleteAdminAssignment(roomId, userId int) error {
	res, err := db.conn.Exec(
		"DELETE FROM room_admin_assignments WHERE room_id = $1 AND user_id = $2",
		roomId,
		userId,
	)
	if err != nil {
		return err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}

	return nil
}
