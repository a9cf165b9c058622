package constants

const (
	ERROR_INTERNAL_ERROR = "Lỗi hệ thống, vui lòng thử lại sau"
	ERROR_CREATE         = "Không thể tạo dữ liệu"

	MISSING_LOGIN_INPUT   = "Thiếu thông tin đăng nhập"
	INVALID_USERNAME      = "Tên tài khoản không tồn tại"
	INVALID_EMAIL         = "Email không tồn tại"
	INVALID_PASSWORD      = "Mật khẩu không đúng"
	CAN_NOT_HASH_PASSWORD = "Không thể mã hóa mật khẩu"

	DATA_INPUT_IS_NOT_NUMBER = "Dữ liệu đầu vào phải là số"

	PAYMENT_NOT_FOUND         = "Không tìm thấy giao dịch hoặc giao dịch đã được xử lý"
	PAYMENT_AMOUNT_MISMATCH   = "Số tiền thanh toán không khớp với giao dịch"
	PAYMENT_INVALID_SIGNATURE = "Lỗi bảo mật: Thông tin giao dịch không hợp lệ"

	PRICE_NOT_FOUND = "Không tìm thấy gói dịch vụ"
	MOVIE_NOT_FOUND = "Không tìm thấy movie"
)
